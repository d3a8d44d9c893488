package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"institution_manager/config"
	"institution_manager/model"
)

const apiVersion = "2023-10"

// DiscountRestrictions narrows a shipping discount to specific products or
// collections. Ignored entirely unless RestrictToProducts is set.
type DiscountRestrictions struct {
	AllowedCollections []string
	AllowedProducts    []string
	RestrictToProducts bool
}

// Client wraps the Shopify Admin REST API. Every method degrades to a safe
// default (empty id, false, empty slice) when credentials are missing or the
// transport fails; callers never see an error from this boundary.
type Client struct {
	apiURL      string
	accessToken string
	http        *http.Client
}

func NewClient(apiURL, accessToken string) *Client {
	return &Client{
		apiURL:      apiURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromEnv reads SHOPIFY_API_URL and SHOPIFY_ACCESS_TOKEN.
func NewClientFromEnv() *Client {
	return NewClient(config.Config("SHOPIFY_API_URL"), config.Config("SHOPIFY_ACCESS_TOKEN"))
}

func (c *Client) Configured() bool {
	return c.apiURL != "" && c.accessToken != ""
}

// CreateShippingDiscount creates a free-shipping price rule plus a discount
// code under it and returns the discount code id, or "" when the provider is
// unconfigured or either call fails.
func (c *Client) CreateShippingDiscount(code string, restrictions *DiscountRestrictions) string {
	if !c.Configured() {
		log.Println("shopify not configured, skipping discount code creation")
		return ""
	}

	priceRule := map[string]any{
		"title":              "Free Shipping - " + code,
		"target_type":        "shipping_line",
		"target_selection":   "all",
		"allocation_method":  "across",
		"value_type":         "percentage",
		"value":              "-100.0",
		"customer_selection": "all",
		"usage_limit":        nil,
		"starts_at":          time.Now().Format(time.RFC3339),
	}
	if restrictions != nil && restrictions.RestrictToProducts &&
		(len(restrictions.AllowedProducts) > 0 || len(restrictions.AllowedCollections) > 0) {
		priceRule["target_type"] = "line_item"
		priceRule["target_selection"] = "entitled"
		if len(restrictions.AllowedProducts) > 0 {
			priceRule["entitled_product_ids"] = restrictions.AllowedProducts
		}
		if len(restrictions.AllowedCollections) > 0 {
			priceRule["entitled_collection_ids"] = restrictions.AllowedCollections
		}
	}

	var priceRuleResp struct {
		PriceRule struct {
			Id json.Number `json:"id"`
		} `json:"price_rule"`
	}
	err := c.call(http.MethodPost, "/price_rules.json", map[string]any{"price_rule": priceRule}, &priceRuleResp)
	if err != nil {
		log.Println("failed to create shopify price rule:", err)
		return ""
	}

	var discountResp struct {
		DiscountCode struct {
			Id json.Number `json:"id"`
		} `json:"discount_code"`
	}
	path := fmt.Sprintf("/price_rules/%s/discount_codes.json", priceRuleResp.PriceRule.Id.String())
	err = c.call(http.MethodPost, path, map[string]any{
		"discount_code": map[string]any{"code": code},
	}, &discountResp)
	if err != nil {
		log.Println("failed to create shopify discount code:", err)
		return ""
	}
	return discountResp.DiscountCode.Id.String()
}

// SetDiscountEnabled flips the remote discount code between enabled and
// disabled. Best effort.
func (c *Client) SetDiscountEnabled(discountId string, enabled bool) bool {
	if !c.Configured() || discountId == "" {
		log.Println("shopify not configured or discount id missing")
		return false
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	err := c.call(http.MethodPut, "/discount_codes/"+discountId+".json", map[string]any{
		"discount_code": map[string]any{"status": status},
	}, nil)
	if err != nil {
		log.Println("failed to update shopify discount code status:", err)
		return false
	}
	return true
}

func (c *Client) DeleteDiscount(discountId string) bool {
	if !c.Configured() || discountId == "" {
		log.Println("shopify not configured or discount id missing")
		return false
	}

	if err := c.call(http.MethodDelete, "/discount_codes/"+discountId+".json", nil, nil); err != nil {
		log.Println("failed to delete shopify discount code:", err)
		return false
	}
	return true
}

// IsDiscountValid reports whether Shopify knows the code at all.
func (c *Client) IsDiscountValid(code string) bool {
	if !c.Configured() {
		log.Println("shopify not configured")
		return false
	}

	var resp struct {
		DiscountCodes []struct {
			Code string `json:"code"`
		} `json:"discount_codes"`
	}
	if err := c.call(http.MethodGet, "/discount_codes.json?code="+code, nil, &resp); err != nil {
		log.Println("failed to validate shopify discount code:", err)
		return false
	}
	return len(resp.DiscountCodes) > 0
}

func (c *Client) ListProducts() []model.ShopifyProduct {
	if !c.Configured() {
		log.Println("shopify not configured")
		return []model.ShopifyProduct{}
	}

	var resp struct {
		Products []struct {
			Id     json.Number `json:"id"`
			Title  string      `json:"title"`
			Handle string      `json:"handle"`
			Status string      `json:"status"`
		} `json:"products"`
	}
	if err := c.call(http.MethodGet, "/products.json?limit=250", nil, &resp); err != nil {
		log.Println("failed to fetch shopify products:", err)
		return []model.ShopifyProduct{}
	}

	products := make([]model.ShopifyProduct, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, model.ShopifyProduct{
			Id:     p.Id.String(),
			Title:  p.Title,
			Handle: p.Handle,
			Status: p.Status,
		})
	}
	return products
}

func (c *Client) ListCollections() []model.ShopifyCollection {
	if !c.Configured() {
		log.Println("shopify not configured")
		return []model.ShopifyCollection{}
	}

	var resp struct {
		Collections []struct {
			Id            json.Number `json:"id"`
			Title         string      `json:"title"`
			Handle        string      `json:"handle"`
			ProductsCount int64       `json:"products_count"`
		} `json:"collections"`
	}
	if err := c.call(http.MethodGet, "/collections.json?limit=250", nil, &resp); err != nil {
		log.Println("failed to fetch shopify collections:", err)
		return []model.ShopifyCollection{}
	}

	collections := make([]model.ShopifyCollection, 0, len(resp.Collections))
	for _, col := range resp.Collections {
		collections = append(collections, model.ShopifyCollection{
			Id:            col.Id.String(),
			Title:         col.Title,
			Handle:        col.Handle,
			ProductsCount: col.ProductsCount,
		})
	}
	return collections
}

func (c *Client) call(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	url := c.apiURL + "/admin/api/" + apiVersion + path
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("shopify api error: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
