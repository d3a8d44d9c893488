package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// CodeIssuedData feeds the code-issued email template.
type CodeIssuedData struct {
	InstitutionName string
	Code            string
	PageUrl         string
}

// SendCodeIssuedEmail mails the fresh discount code to the institution's
// contact address. Async and best-effort: a missing SMTP config or a send
// failure is logged, never surfaced.
func SendCodeIssuedEmail(to string, data CodeIssuedData) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			log.Println("SMTP not configured, skipping code issued email")
			return
		}

		tmpl, err := template.ParseFiles("templates/code_issued.html")
		if err != nil {
			log.Printf("failed to load code issued template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render code issued template: %v", err)
			return
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your free shipping code "+data.Code)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send code issued email: %v", err)
		}
	}()
}
