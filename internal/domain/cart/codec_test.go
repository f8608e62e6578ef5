package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := Cart{Items: []Item{newItem(3, "179.9", 2), newItem(1, "139.9", 1)}}

	data, err := Encode(c)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, c.Len(), decoded.Len())
	for i := range c.Items {
		require.Equal(t, c.Items[i].ID, decoded.Items[i].ID)
		require.Equal(t, c.Items[i].Title, decoded.Items[i].Title)
		require.Equal(t, c.Items[i].Image, decoded.Items[i].Image)
		require.Equal(t, c.Items[i].Amount, decoded.Items[i].Amount)
		require.True(t, c.Items[i].Price.Equal(decoded.Items[i].Price))
	}
}

func TestEncode_LayoutAndEmptyCart(t *testing.T) {
	data, err := Encode(Cart{})
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(data))

	data, err = Encode(Cart{Items: []Item{newItem(5, "59.9", 3)}})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":5,"title":"Product","price":59.9,"image":"https://cdn.example.com/p.jpg","amount":3}]`, string(data))
}

func TestDecode_Null(t *testing.T) {
	c, err := Decode([]byte(`null`))
	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
}

func TestDecode_InvalidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "Not JSON", payload: `{{{`},
		{name: "Object instead of array", payload: `{"id":1}`},
		{name: "Duplicate product", payload: `[{"id":1,"price":1,"amount":1},{"id":1,"price":1,"amount":2}]`},
		{name: "Zero amount", payload: `[{"id":1,"price":1,"amount":0}]`},
		{name: "Missing price", payload: `[{"id":1,"amount":1}]`},
		{name: "Zero price", payload: `[{"id":1,"price":0,"amount":1}]`},
		{name: "Negative price", payload: `[{"id":1,"price":-10.5,"amount":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			require.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}
