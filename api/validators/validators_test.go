package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
)

type sampleBody struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"omitempty,min=1"`
}

func (sampleBody) ValidationMessage(field, tag string) string {
	if field == "product_id" {
		return "product_id is required"
	}
	return ""
}

type statusBody struct {
	Status string `json:"status" validate:"required,order_status"`
}

func newJSONRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyUsesBodyMessage(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(newJSONRequest(`{"quantity":2}`), &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.PublicMessage() != "product_id is required" {
		t.Fatalf("unexpected message %q", typed.PublicMessage())
	}
}

func TestDecodeJSONBodyEmptyBodyValidatesZeroValue(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(newJSONRequest(""), &body)
	if typed := pkgerrors.As(err); typed == nil || typed.PublicMessage() != "product_id is required" {
		t.Fatalf("expected product_id message, got %v", err)
	}
}

func TestDecodeJSONBodyDefaultMessage(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(newJSONRequest(`{"product_id":3,"quantity":0}`), &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.PublicMessage() != "quantity must be at least 1" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFieldsAndBadJSON(t *testing.T) {
	var body sampleBody
	if err := DecodeJSONBody(newJSONRequest(`{"product_id":1,"extra":true}`), &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
	if err := DecodeJSONBody(newJSONRequest(`{"product_id":`), &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for malformed json, got %v", err)
	}
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	var body sampleBody
	if err := DecodeJSONBody(newJSONRequest(`{"product_id":9,"quantity":3}`), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.ProductID != 9 || body.Quantity == nil || *body.Quantity != 3 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestOrderStatusRule(t *testing.T) {
	if err := ValidateStruct(&statusBody{Status: "shipped"}); err != nil {
		t.Fatalf("shipped should be valid: %v", err)
	}
	err := ValidateStruct(&statusBody{Status: "archived"})
	if typed := pkgerrors.As(err); typed == nil || typed.PublicMessage() != "status must be a valid order status" {
		t.Fatalf("expected order status error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?subtotal=1200&bad=x", nil)
	if v, err := ParseQueryInt(r, "subtotal", 0, 0, 1_000_000); err != nil || v != 1200 {
		t.Fatalf("expected 1200, got %d err=%v", v, err)
	}
	if v, err := ParseQueryInt(r, "missing", 7, 0, 10); err != nil || v != 7 {
		t.Fatalf("expected default 7, got %d err=%v", v, err)
	}
	if _, err := ParseQueryInt(r, "bad", 0, 0, 10); err == nil {
		t.Fatal("expected numeric error")
	}
	if _, err := ParseQueryInt(r, "subtotal", 0, 0, 10); err == nil {
		t.Fatal("expected range error")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer   xyz", "xyz", true},
		{"raw-token", "raw-token", true},
		{"", "", false},
		{"Bearer ", "", false},
	}
	for _, tt := range tests {
		got, err := BearerToken(tt.header)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("BearerToken(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  silk  ", 0); got != "silk" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("बनारसी साड़ी", 3); got != "बना" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
