package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishpatch/order-api/internal/domain/customer"
	"github.com/dishpatch/order-api/internal/domain/geo"
	"github.com/dishpatch/order-api/internal/domain/menu"
	"github.com/dishpatch/order-api/internal/domain/order"
	"github.com/dishpatch/order-api/internal/domain/pricing"
	"github.com/dishpatch/order-api/internal/domain/promo"
	"github.com/dishpatch/order-api/internal/domain/restaurant"
)

// --- Fake repositories ---

type fakeCustomerRepo map[string]*customer.Customer

func (f fakeCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := f[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

type fakeRestaurantRepo map[string]*restaurant.Restaurant

func (f fakeRestaurantRepo) GetByID(_ context.Context, id string) (*restaurant.Restaurant, error) {
	r, ok := f[id]
	if !ok {
		return nil, restaurant.ErrNotFound
	}
	return r, nil
}

type fakeMenuRepo []menu.Item

func (f fakeMenuRepo) List(_ context.Context) ([]menu.Item, error) {
	return f, nil
}

func (f fakeMenuRepo) GetByIDs(_ context.Context, ids []string) ([]menu.Item, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var found []menu.Item
	for _, it := range f {
		if want[it.ID] {
			found = append(found, it)
		}
	}
	return found, nil
}

type fakeZoneRepo map[string]*pricing.Zone

func (f fakeZoneRepo) GetByName(_ context.Context, name string) (*pricing.Zone, error) {
	z, ok := f[name]
	if !ok {
		return nil, pricing.ErrZoneNotFound
	}
	return z, nil
}

type fakePromoRepo []promo.Promotion

func (f fakePromoRepo) ListActive(_ context.Context) ([]promo.Promotion, error) {
	return f, nil
}

type fakeOrderRepo struct {
	orders map[string]*order.Order
}

func (f *fakeOrderRepo) Insert(_ context.Context, o *order.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// --- Response shapes (mirroring the wire format, not internal types) ---

type orderJSON struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customerId"`
	RestaurantID   string          `json:"restaurantId"`
	CustomerName   string          `json:"customerName"`
	RestaurantName string          `json:"restaurantName"`
	Items          []lineItemJSON  `json:"items"`
	BasePrice      float64         `json:"basePrice"`
	DeliveryFee    float64         `json:"deliveryFee"`
	PromoDiscount  float64         `json:"promoDiscount"`
	FinalTotal     float64         `json:"finalTotal"`
	Breakdown      breakdownJSON   `json:"breakdown"`
	PlacedAt       string          `json:"placedAt"`
	Status         string          `json:"status"`
}

type lineItemJSON struct {
	ProductID string  `json:"productId"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
}

type breakdownJSON struct {
	DistanceKm     float64  `json:"distanceKm"`
	ZoneBaseFee    float64  `json:"zoneBaseFee"`
	PerKmRate      float64  `json:"perKmRate"`
	PeakMultiplier float64  `json:"peakMultiplier"`
	DeliveryFee    float64  `json:"deliveryFee"`
	AppliedPromos  []string `json:"appliedPromos"`
}

type failJSON struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestMux wires a mux over fake repositories. Customer and restaurant
// share a location, so the delivery fee is the zone base fee times the peak
// multiplier.
func newTestMux(t *testing.T) (*http.ServeMux, *fakeOrderRepo) {
	t.Helper()

	here := geo.Point{Lat: 24.86, Lng: 67.00}
	customers := fakeCustomerRepo{
		"CUST-12": {ID: "CUST-12", Name: "Anas Ahmed", Location: here, Zone: "Suburban"},
	}
	restaurants := fakeRestaurantRepo{
		"REST-09": {ID: "REST-09", Name: "Burger King DHA", Location: here},
	}
	menuItems := fakeMenuRepo{
		{ID: "ITEM-101", Name: "Whopper", Price: dec("4.50"), RestaurantID: "REST-09"},
		{ID: "ITEM-303", Name: "Fries", Price: dec("3.00"), RestaurantID: "REST-09"},
	}
	zones := fakeZoneRepo{
		"Suburban": {Name: "Suburban", BaseFee: dec("3.00"), PerKmRate: dec("0.60")},
	}
	promos := fakePromoRepo{
		{Name: "Welcome 10%", Kind: promo.KindFirstOrder, Discount: dec("0.10"), Active: true},
	}
	orders := &fakeOrderRepo{orders: map[string]*order.Order{}}

	schedule, err := pricing.NewSchedule([]pricing.PeakRule{
		{Start: 11, End: 14, Multiplier: dec("1.2")},
	})
	require.NoError(t, err)

	svc := order.NewService(
		customers, restaurants, menuItems,
		pricing.NewCalculator(zones, schedule),
		promo.NewEngine(promos),
		orders,
	)

	mux := http.NewServeMux()
	NewHandler(svc, menuItems).Register(mux)
	return mux, orders
}

func doRequest(mux *http.ServeMux, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestCreateOrder_Success(t *testing.T) {
	mux, orders := newTestMux(t)

	// Off-peak time: fee = 3.00 base fee, zero distance, multiplier 1.
	body := []byte(`{
		"customerId": "CUST-12",
		"restaurantId": "REST-09",
		"items": [{"productId": "ITEM-101", "qty": 2}, {"productId": "ITEM-303", "qty": 1}],
		"placedAt": "2025-03-10T09:30:00Z"
	}`)
	w := doRequest(mux, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got orderJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "CUST-12", got.CustomerID)
	assert.InDelta(t, 12.0, got.BasePrice, 1e-9) // 2*4.50 + 3.00
	assert.InDelta(t, 3.0, got.DeliveryFee, 1e-9)
	assert.InDelta(t, 1.2, got.PromoDiscount, 1e-9) // first-order 10%
	assert.InDelta(t, 13.8, got.FinalTotal, 1e-9)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, []string{"Welcome 10%"}, got.Breakdown.AppliedPromos)
	assert.Zero(t, got.Breakdown.DistanceKm)
	assert.InDelta(t, 1.0, got.Breakdown.PeakMultiplier, 1e-9)

	require.Len(t, got.Items, 2)
	assert.InDelta(t, 4.5, got.Items[0].UnitPrice, 1e-9)

	assert.Len(t, orders.orders, 1, "order must be persisted")
}

func TestCreateOrder_PeakSurgeApplied(t *testing.T) {
	mux, _ := newTestMux(t)

	body := []byte(`{
		"customerId": "CUST-12",
		"restaurantId": "REST-09",
		"items": [{"productId": "ITEM-303", "qty": 1}],
		"placedAt": "2025-03-10T12:30:00Z"
	}`)
	w := doRequest(mux, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got orderJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 3.6, got.DeliveryFee, 1e-9) // 3.00 * 1.2
	assert.InDelta(t, 1.2, got.Breakdown.PeakMultiplier, 1e-9)
}

func TestCreateOrder_ShapeValidation(t *testing.T) {
	mux, orders := newTestMux(t)

	body := []byte(`{
		"restaurantId": "REST-09",
		"items": [{"productId": "ITEM-101", "qty": 0}],
		"placedAt": "not-a-date"
	}`)
	w := doRequest(mux, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got failJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "fail", got.Status)
	assert.Equal(t, "Validation failed", got.Message)

	fields := make([]string, len(got.Errors))
	for i, fe := range got.Errors {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"customerId", "items", "placedAt"}, fields)
	assert.Empty(t, orders.orders)
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	mux, _ := newTestMux(t)

	w := doRequest(mux, http.MethodPost, "/api/orders", []byte(`{"customerId": `))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got failJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Invalid JSON body", got.Message)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	mux, _ := newTestMux(t)

	body := []byte(`{
		"customerId": "CUST-99",
		"restaurantId": "REST-09",
		"items": [{"productId": "ITEM-101", "qty": 1}],
		"placedAt": "2025-03-10T09:30:00Z"
	}`)
	w := doRequest(mux, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusNotFound, w.Code)

	var got failJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Customer not found", got.Message)
}

func TestCreateOrder_UnknownMenuItem(t *testing.T) {
	mux, _ := newTestMux(t)

	body := []byte(`{
		"customerId": "CUST-12",
		"restaurantId": "REST-09",
		"items": [{"productId": "ITEM-101", "qty": 1}, {"productId": "ITEM-404", "qty": 1}],
		"placedAt": "2025-03-10T09:30:00Z"
	}`)
	w := doRequest(mux, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got failJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "Items not found: ITEM-404", got.Errors[0].Message)
}

func TestGetOrder(t *testing.T) {
	mux, orders := newTestMux(t)

	stored := &order.Order{
		ID:             "ord-1",
		CustomerID:     "CUST-12",
		RestaurantID:   "REST-09",
		CustomerName:   "Anas Ahmed",
		RestaurantName: "Burger King DHA",
		Items:          []order.LineItem{{ProductID: "ITEM-101", Qty: 1, UnitPrice: dec("4.50")}},
		BasePrice:      dec("4.50"),
		DeliveryFee:    dec("3.00"),
		FinalTotal:     dec("7.50"),
		Status:         order.StatusPending,
	}
	orders.orders["ord-1"] = stored

	w := doRequest(mux, http.MethodGet, "/api/orders/ord-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got orderJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Anas Ahmed", got.CustomerName)
	assert.Equal(t, "Burger King DHA", got.RestaurantName)
	assert.InDelta(t, 7.5, got.FinalTotal, 1e-9)
}

func TestGetOrder_NotFound(t *testing.T) {
	mux, _ := newTestMux(t)

	w := doRequest(mux, http.MethodGet, "/api/orders/ord-missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var got failJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Order not found", got.Message)
}

func TestListMenu(t *testing.T) {
	mux, _ := newTestMux(t)

	w := doRequest(mux, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []lineItemJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
