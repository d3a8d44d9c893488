package model

import "encoding/json"

// Catalog items returned by the Shopify proxy endpoints. Only the fields the
// dashboard picker needs.
type ShopifyProduct struct {
	Id     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Status string `json:"status"`
}

type ShopifyCollection struct {
	Id            string `json:"id"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	ProductsCount int64  `json:"products_count"`
}

// ShopifyOrderWebhook is the inbound order notification. Shopify serializes
// discount amounts as decimal strings, hence json.Number.
type ShopifyOrderWebhook struct {
	Id            int64                `json:"id"`
	OrderNumber   int64                `json:"order_number"`
	DiscountCodes []OrderDiscountEntry `json:"discount_codes"`
}

type OrderDiscountEntry struct {
	Code   string      `json:"code"`
	Amount json.Number `json:"amount"`
	Type   string      `json:"type"`
}
