package helper

import (
	"fmt"
	"math/rand"
	"time"

	"institution_manager/constants"

	"github.com/gosimple/slug"
)

// GenerateInstitutionCode returns a code like INST-2025-042. The 3-digit
// suffix is not globally unique; callers retry on the uniqueness constraint.
func GenerateInstitutionCode() string {
	year := time.Now().Year()
	return fmt.Sprintf("%s-%d-%03d", constants.CodePrefix, year, rand.Intn(constants.CodeSuffixRange))
}

// DefaultPageUrl builds the storefront page URL suggested for a new
// institution when none was supplied.
func DefaultPageUrl(storefrontURL, name string) string {
	if storefrontURL == "" {
		return ""
	}
	return storefrontURL + "/pages/" + slug.Make(name)
}
