package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Defaults(t *testing.T) {
	c := Client{Name: "Globex", Code: " glx-01 ", Contact: ClientContact{Email: "Ops@Globex.com"}}
	c.ApplyDefaults(time.Now())

	assert.Equal(t, "GLX-01", c.Code)
	assert.Equal(t, "ops@globex.com", c.Contact.Email)
	assert.Equal(t, ClientActive, c.Status)
	assert.Equal(t, DefaultCurrency, c.Billing.Currency)
	assert.Equal(t, DefaultPaymentTermsDays, c.Billing.PaymentTermsDays)
	require.NoError(t, c.Validate())
}

func TestClient_Validate(t *testing.T) {
	valid := func() Client {
		c := Client{Name: "Initech", Code: "INI"}
		c.ApplyDefaults(time.Now())
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Client)
		want   string
	}{
		{"missing name", func(c *Client) { c.Name = "" }, "name"},
		{"short code", func(c *Client) { c.Code = "I" }, "code"},
		{"code with spaces", func(c *Client) { c.Code = "IN I" }, "code"},
		{"bad status", func(c *Client) { c.Status = "archived" }, "status"},
		{"bad email", func(c *Client) { c.Contact.Email = "nobody" }, "email"},
		{"negative terms", func(c *Client) { c.Billing.PaymentTermsDays = -5 }, "payment"},
		{"bad currency", func(c *Client) { c.Billing.Currency = "RUPEE" }, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
