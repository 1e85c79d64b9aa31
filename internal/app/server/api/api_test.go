package api

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopkeeper/internal/domain/customer"
	"shopkeeper/internal/domain/product"
	"shopkeeper/internal/domain/sale"
)

func TestSchemaNamer(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{name: "product record", typ: reflect.TypeOf(product.Record{}), want: "ProductRecord"},
		{name: "customer record", typ: reflect.TypeOf(customer.Record{}), want: "CustomerRecord"},
		{name: "pointer", typ: reflect.TypeOf(&sale.ItemRecord{}), want: "SaleItemRecord"},
		{name: "anonymous", typ: reflect.TypeOf(struct{ A int }{}), want: "Hint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaNamer(tt.typ, "Hint"))
		})
	}
}
