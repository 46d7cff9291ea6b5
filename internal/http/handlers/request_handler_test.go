package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sutradhar/internal/domain"
)

func TestCustomRequestFlow(t *testing.T) {
	app, db := testApp(t)
	seedMarket(t, db)
	buyer := signup(t, app, "buyer@example.com", "buyer")
	seller := signup(t, app, "weaver@example.com", "seller")

	resp := doJSON(t, app, "POST", "/api/v1/custom-requests", buyer, fiber.Map{
		"brief_text": "A bridal saree in deep red with gold zari border.",
		"budget":     6000, "timeline_days": 30, "materials": "silk",
	})
	require.Equal(t, 201, resp.StatusCode)
	var cr domain.CustomRequest
	decode(t, resp, &cr)
	assert.Equal(t, domain.RequestNew, cr.Status)

	// Accepting before any quote is a conflict.
	resp = doJSON(t, app, "POST", "/api/v1/custom-requests/"+cr.ID+"/accept", buyer, nil)
	assert.Equal(t, 409, resp.StatusCode)
	resp.Body.Close()

	// The seller sees the open request and quotes it.
	resp = doJSON(t, app, "GET", "/api/v1/seller/custom-requests", seller, nil)
	require.Equal(t, 200, resp.StatusCode)
	var open struct {
		Requests []domain.CustomRequest `json:"requests"`
	}
	decode(t, resp, &open)
	require.Len(t, open.Requests, 1)

	resp = doJSON(t, app, "POST", "/api/v1/seller/custom-requests/"+cr.ID+"/quote", seller, fiber.Map{
		"quote_amount": 5500, "quote_timeline_days": 25,
	})
	require.Equal(t, 200, resp.StatusCode)
	resp.Body.Close()

	// Quoting again is a conflict.
	resp = doJSON(t, app, "POST", "/api/v1/seller/custom-requests/"+cr.ID+"/quote", seller, fiber.Map{
		"quote_amount": 5000,
	})
	assert.Equal(t, 409, resp.StatusCode)
	resp.Body.Close()

	// The buyer accepts; a linked order appears.
	resp = doJSON(t, app, "POST", "/api/v1/custom-requests/"+cr.ID+"/accept", buyer, nil)
	require.Equal(t, 201, resp.StatusCode)
	var order domain.Order
	decode(t, resp, &order)
	assert.Equal(t, cr.ID, order.CustomRequestID)
	assert.InDelta(t, 5500.0, order.Total, 0.001)

	resp = doJSON(t, app, "GET", "/api/v1/custom-requests", buyer, nil)
	require.Equal(t, 200, resp.StatusCode)
	var mine struct {
		Requests []domain.CustomRequest `json:"requests"`
	}
	decode(t, resp, &mine)
	require.Len(t, mine.Requests, 1)
	assert.Equal(t, domain.RequestAccepted, mine.Requests[0].Status)
}

func TestCustomRequestBriefValidation(t *testing.T) {
	app, db := testApp(t)
	seedMarket(t, db)
	buyer := signup(t, app, "buyer@example.com", "buyer")

	resp := doJSON(t, app, "POST", "/api/v1/custom-requests", buyer, fiber.Map{"brief_text": "short"})
	assert.Equal(t, 400, resp.StatusCode)
	resp.Body.Close()
}
