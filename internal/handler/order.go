package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/dishpatch/order-api/internal/domain/fault"
	"github.com/dishpatch/order-api/internal/domain/order"
)

const maxBodySize = 1 << 20

// createOrderRequest is the wire form of an order creation request.
type createOrderRequest struct {
	CustomerID   string
	RestaurantID string
	Items        []order.ItemRequest
	PlacedAt     string
}

// CreateOrder handles POST /api/orders: it decodes and validates the request
// shape, delegates pricing and persistence to the order service, and writes
// the priced order with 201.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Unable to read request body", nil)
		return
	}

	req, err := decodeCreateOrder(body)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	domainReq, fields := req.validate()
	if len(fields) > 0 {
		writeFail(w, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	o, err := h.orders.Create(r.Context(), domainReq)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

// GetOrder handles GET /api/orders/{id}. Pricing fields are returned as
// stored; nothing is recomputed on read.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeFail(w, http.StatusBadRequest, "Order ID is required", nil)
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

// decodeCreateOrder parses the request body, skipping unknown fields.
func decodeCreateOrder(body []byte) (*createOrderRequest, error) {
	var req createOrderRequest
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "customerId":
			req.CustomerID, err = d.Str()
		case "restaurantId":
			req.RestaurantID, err = d.Str()
		case "placedAt":
			req.PlacedAt, err = d.Str()
		case "items":
			err = d.Arr(func(d *jx.Decoder) error {
				var item order.ItemRequest
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "productId":
						item.ProductID, err = d.Str()
					case "qty":
						item.Qty, err = d.Int()
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				req.Items = append(req.Items, item)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return nil, err
	}
	return &req, nil
}

// validate performs the boundary shape checks and converts to the domain
// request. All failing fields are reported, not just the first.
func (r *createOrderRequest) validate() (order.CreateRequest, []fault.FieldError) {
	var fields []fault.FieldError

	if r.CustomerID == "" {
		fields = append(fields, fault.FieldError{Field: "customerId", Message: "Customer ID is required"})
	}
	if r.RestaurantID == "" {
		fields = append(fields, fault.FieldError{Field: "restaurantId", Message: "Restaurant ID is required"})
	}
	if len(r.Items) == 0 {
		fields = append(fields, fault.FieldError{Field: "items", Message: "At least one item is required"})
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			fields = append(fields, fault.FieldError{Field: "items", Message: "Product ID is required"})
			continue
		}
		if item.Qty < 1 || item.Qty > 100 {
			fields = append(fields, fault.FieldError{
				Field:   "items",
				Message: "Quantity for " + item.ProductID + " must be between 1 and 100",
			})
		}
	}

	var placedAt time.Time
	if r.PlacedAt == "" {
		fields = append(fields, fault.FieldError{Field: "placedAt", Message: "Order placement date is required"})
	} else {
		var err error
		placedAt, err = time.Parse(time.RFC3339, r.PlacedAt)
		if err != nil {
			fields = append(fields, fault.FieldError{Field: "placedAt", Message: "Invalid date format"})
		}
	}

	if len(fields) > 0 {
		return order.CreateRequest{}, fields
	}
	return order.CreateRequest{
		CustomerID:   r.CustomerID,
		RestaurantID: r.RestaurantID,
		Items:        r.Items,
		PlacedAt:     placedAt,
	}, nil
}

// encodeOrder writes the full order payload, including the audit breakdown.
func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("customerId")
	e.Str(o.CustomerID)
	e.FieldStart("restaurantId")
	e.Str(o.RestaurantID)
	if o.CustomerName != "" {
		e.FieldStart("customerName")
		e.Str(o.CustomerName)
	}
	if o.RestaurantName != "" {
		e.FieldStart("restaurantName")
		e.Str(o.RestaurantName)
	}

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items {
		e.ObjStart()
		e.FieldStart("productId")
		e.Str(item.ProductID)
		e.FieldStart("qty")
		e.Int(item.Qty)
		e.FieldStart("unitPrice")
		e.RawStr(item.UnitPrice.String())
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("basePrice")
	e.RawStr(o.BasePrice.String())
	e.FieldStart("deliveryFee")
	e.RawStr(o.DeliveryFee.String())
	e.FieldStart("promoDiscount")
	e.RawStr(o.PromoDiscount.String())
	e.FieldStart("finalTotal")
	e.RawStr(o.FinalTotal.String())

	e.FieldStart("breakdown")
	e.ObjStart()
	e.FieldStart("distanceKm")
	e.Float64(o.Breakdown.DistanceKm)
	e.FieldStart("zoneBaseFee")
	e.RawStr(o.Breakdown.ZoneBaseFee.String())
	e.FieldStart("perKmRate")
	e.RawStr(o.Breakdown.PerKmRate.String())
	e.FieldStart("peakMultiplier")
	e.RawStr(o.Breakdown.PeakMultiplier.String())
	e.FieldStart("deliveryFee")
	e.RawStr(o.Breakdown.DeliveryFee.String())
	e.FieldStart("appliedPromos")
	e.ArrStart()
	for _, name := range o.Breakdown.AppliedPromos {
		e.Str(name)
	}
	e.ArrEnd()
	e.ObjEnd()

	e.FieldStart("placedAt")
	e.Str(o.PlacedAt.UTC().Format(time.RFC3339))
	e.FieldStart("status")
	e.Str(string(o.Status))
	if !o.CreatedAt.IsZero() {
		e.FieldStart("createdAt")
		e.Str(o.CreatedAt.UTC().Format(time.RFC3339))
	}
	e.ObjEnd()
}
