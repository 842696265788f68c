//go:build unit

package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/infra"
	"fleet-console/internal/infra/backend"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/pkg/logger"
	"fleet-console/internal/testutil/builder"
	"fleet-console/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method  string
	path    string
	headers http.Header
	body    map[string]any
}

// newServer answers every request with status and body, recording what it saw.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec := recorded{method: r.Method, path: r.URL.Path, headers: r.Header.Clone()}
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &rec.body))
		}
		calls = append(calls, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newClient(baseURL string) *backend.Client {
	cfg := config.NewTestConfig().Backend
	cfg.BaseURL = baseURL
	return backend.NewClient(cfg, logger.Discard())
}

func TestClient_InitService_Fuel(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"data":{
		"consumable_price":"45000","service_price":"1500","delivery_price":"2000",
		"quantity":50,"amount":"48500","wallet_balance":"60000"}}`)
	c := newClient(srv.URL)

	d := builder.NewFuelDraftBuilder().BuildDomain()
	b, err := c.InitService(context.Background(), shared.OrderFromDraft(d))
	require.NoError(t, err)

	assert.True(t, b.EstimatedCharge().Equal(decimal.NewFromInt(48500)))
	assert.True(t, b.CoveredByWallet())
	assert.Nil(t, b.SubscriptionCharge)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/services/init-fuel-service", got.path)
	assert.Equal(t, "Bearer test-token", got.headers.Get("Authorization"))
	assert.Empty(t, got.headers.Get("Idempotency-Key"))

	want := map[string]any{
		"asset_ids":    []any{"A1"},
		"fuel_type":    "PETROL",
		"location_id":  "L1",
		"time_slot":    "NOW",
		"is_scheduled": false,
		"quantity":     float64(50),
	}
	if diff := cmp.Diff(want, got.body); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_InitService_Towing(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"data":{
		"consumable_price":"0","service_price":"25000","delivery_price":"5000"}}`)
	c := newClient(srv.URL)

	d := builder.NewTowingDraftBuilder().BuildDomain()
	_, err := c.InitService(context.Background(), shared.OrderFromDraft(d))
	require.NoError(t, err)

	got := (*calls)[0]
	assert.Equal(t, "/services/init-emergency-service", got.path)
	assert.Equal(t, "TOWING", got.body["emergency_type"])
	assert.Equal(t, "FLATBED", got.body["towing_method"])
	assert.Contains(t, got.body, "location_latitude")
	assert.Contains(t, got.body, "to_location_latitude")
	assert.NotContains(t, got.body, "quantity")
	assert.NotContains(t, got.body, "fuel_type")
}

func TestClient_InitService_ScheduledManualAddress(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"data":{
		"consumable_price":"0","service_price":"8000","delivery_price":"0"}}`)
	c := newClient(srv.URL)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	d := builder.NewMaintenanceDraftBuilder().WithScheduled(at).BuildDomain()
	_, err := c.InitService(context.Background(), shared.OrderFromDraft(d))
	require.NoError(t, err)

	got := (*calls)[0]
	assert.Equal(t, "/services/init-maintenance-service", got.path)
	assert.Equal(t, "OIL_CHANGE", got.body["maintenance_type"])
	assert.Equal(t, "14 Admiralty Way, Lekki", got.body["location_address"])
	assert.Equal(t, "2026-03-02T09:00:00Z", got.body["time_slot"])
	assert.Equal(t, true, got.body["is_scheduled"])
	assert.NotContains(t, got.body, "location_latitude")
}

func TestClient_PlaceService(t *testing.T) {
	srv, calls := newServer(t, http.StatusCreated, `{"data":{"order_id":"ORD-1","pricing":{
		"consumable_price":"45000","service_price":"1500","delivery_price":"2000"}}}`)
	c := newClient(srv.URL)

	order := shared.OrderFromDraft(builder.NewFuelDraftBuilder().BuildDomain())
	order.IdempotencyKey = uuid.New()

	placed, err := c.PlaceService(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", placed.OrderID)
	require.NotNil(t, placed.Breakdown)
	assert.True(t, placed.Breakdown.EstimatedCharge().Equal(decimal.NewFromInt(48500)))

	got := (*calls)[0]
	assert.Equal(t, "/services/place-fuel-service", got.path)
	assert.Equal(t, order.IdempotencyKey.String(), got.headers.Get("Idempotency-Key"))
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		kind      infra.GatewayErrorKind
		transient bool
	}{
		{"rejected", http.StatusUnprocessableEntity, `{"message":"insufficient wallet balance"}`, infra.KindRejected, false},
		{"not found", http.StatusNotFound, `{"message":"asset not found"}`, infra.KindNotFound, false},
		{"rate limited", http.StatusTooManyRequests, `{}`, infra.KindRateLimited, true},
		{"unavailable", http.StatusBadGateway, `oops`, infra.KindUnavailable, true},
		{"undecodable", http.StatusOK, `{"data":`, infra.KindDecode, true},
		{"empty data", http.StatusOK, `{"data":null}`, infra.KindDecode, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			c := newClient(srv.URL)

			_, err := c.InitService(context.Background(), shared.OrderFromDraft(builder.NewFuelDraftBuilder().BuildDomain()))
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.transient, errs.Is(err, errs.ErrTransientNetwork))
		})
	}

	t.Run("backend message is kept", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusUnprocessableEntity, `{"message":"insufficient wallet balance"}`)
		c := newClient(srv.URL)

		_, err := c.PlaceService(context.Background(), shared.OrderFromDraft(builder.NewFuelDraftBuilder().BuildDomain()))
		var ge infra.GatewayError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "insufficient wallet balance", ge.Message())
		assert.Equal(t, http.StatusUnprocessableEntity, ge.Status)
	})
}

func TestClient_CircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Backend
	cfg.BaseURL = srv.URL
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerTimeout = time.Hour
	c := backend.NewClient(cfg, logger.Discard())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.ListAssets(ctx)
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
	}

	_, err := c.ListAssets(ctx)
	assert.True(t, infra.IsKind(err, infra.KindCircuitOpen))
	assert.True(t, errs.Is(err, errs.ErrTransientNetwork))
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_RejectionsDoNotTripBreaker(t *testing.T) {
	srv, calls := newServer(t, http.StatusBadRequest, `{"message":"bad"}`)

	cfg := config.NewTestConfig().Backend
	cfg.BaseURL = srv.URL
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	c := backend.NewClient(cfg, logger.Discard())

	for i := 0; i < 5; i++ {
		_, err := c.ListAssets(context.Background())
		assert.True(t, infra.IsKind(err, infra.KindRejected))
	}
	assert.Len(t, *calls, 5)
}

func TestClient_UndecodablePayloadsTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"data":`)
	}))
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Backend
	cfg.BaseURL = srv.URL
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerTimeout = time.Hour
	c := backend.NewClient(cfg, logger.Discard())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.ListAssets(ctx)
		assert.True(t, infra.IsKind(err, infra.KindDecode), "got %v", err)
	}

	_, err := c.ListAssets(ctx)
	assert.True(t, infra.IsKind(err, infra.KindCircuitOpen), "got %v", err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_Directory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /assets", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[
			{"id":"A1","name":"Hilux","plate_number":"LND-101-AA","fuel_type":"DIESEL","tank_capacity":80},
			{"id":"A2","name":"Corolla","plate_number":"KJA-22-BC","fuel_type":"PETROL","tank_capacity":50}]}`)
	})
	mux.HandleFunc("GET /locations", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[
			{"id":"L1","name":"Depot","address":"1 Wharf Rd, Apapa","latitude":6.45,"longitude":3.36},
			{"id":"L2","name":"HQ","address":"2 Broad St"},
			{"id":"L3","name":"Broken","address":"Nowhere","latitude":200,"longitude":3}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newClient(srv.URL)

	assets, err := c.ListAssets(context.Background())
	require.NoError(t, err)
	want := []shared.AssetSnapshot{
		{ID: "A1", Name: "Hilux", PlateNumber: "LND-101-AA", FuelType: request.FuelDiesel, TankCapacity: 80},
		{ID: "A2", Name: "Corolla", PlateNumber: "KJA-22-BC", FuelType: request.FuelPetrol, TankCapacity: 50},
	}
	if diff := cmp.Diff(want, assets); diff != "" {
		t.Errorf("assets mismatch (-want +got):\n%s", diff)
	}

	locations, err := c.ListSavedLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 3)
	require.NotNil(t, locations[0].Coordinates)
	assert.Equal(t, request.Coordinates{Latitude: 6.45, Longitude: 3.36}, *locations[0].Coordinates)
	assert.Equal(t, "2 Broad St", locations[1].Address)
	assert.Nil(t, locations[1].Coordinates)
	assert.Nil(t, locations[2].Coordinates)
}

func TestClient_FuelPricingDetail(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"data":{
		"unit_price":{"petrol":"950","diesel":"1100"},"estimation":{"litres":"10.526"}}}`)
	c := newClient(srv.URL)

	q, err := c.FuelPricingDetail(context.Background(), request.FuelPetrol, decimal.NewFromInt(10000))
	require.NoError(t, err)

	price, ok := q.UnitPrice(request.FuelPetrol)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(950)))
	assert.True(t, q.Litres.Equal(decimal.RequireFromString("10.526")))

	got := (*calls)[0]
	assert.Equal(t, "/fuel/pricing-detail", got.path)
	assert.Equal(t, "PETROL", got.body["fuel_type"])
	assert.Equal(t, "10000", got.body["amount"])
}

func TestClient_Subscriptions(t *testing.T) {
	mux := http.NewServeMux()
	var initBody, verifyBody map[string]any
	mux.HandleFunc("POST /subscriptions/estimate", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"per_asset":"5000","total_amount":"15000"}}`)
	})
	mux.HandleFunc("POST /subscriptions/assign/init", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&initBody))
		_, _ = io.WriteString(w, `{"data":{"authorization_url":"https://pay.example/abc","reference":"R1"}}`)
	})
	mux.HandleFunc("POST /subscriptions/assign/verify", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&verifyBody))
		_, _ = io.WriteString(w, `{"data":{"success":true}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newClient(srv.URL)
	ctx := context.Background()

	est, err := c.EstimateSubscription(ctx, shared.EstimateInput{
		AssetCount: 3, BillingCycle: subscription.CycleMonthly, Category: subscription.CategoryFuel,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, est.AssetCount)
	assert.True(t, est.TotalAmount.Equal(decimal.NewFromInt(15000)))

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	auth, err := c.InitAssignment(ctx, shared.AssignmentInit{
		Plan:         subscription.PlanRef{Estimate: &est},
		BillingCycle: subscription.CycleMonthly,
		StartsAt:     start,
	})
	require.NoError(t, err)
	assert.Equal(t, "R1", auth.Reference)
	assert.NotContains(t, initBody, "plan_id")
	assert.Equal(t, "2026-04-01", initBody["starts_at"])
	assert.Equal(t, map[string]any{"asset_count": float64(3), "category": "fuel", "total_amount": "15000"}, initBody["estimate"])

	ok, err := c.VerifyAssignment(ctx, shared.AssignmentVerify{
		PlanID: "P1", PaymentRef: "R1", StartDate: start, BillingCycle: subscription.CycleMonthly,
	})
	require.NoError(t, err)
	assert.True(t, ok)
	want := map[string]any{"plan_id": "P1", "payment_ref": "R1", "start_date": "2026-04-01", "billing_cycle": "monthly"}
	if diff := cmp.Diff(want, verifyBody); diff != "" {
		t.Errorf("verify payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":[]}`)
	c := newClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListAssets(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
