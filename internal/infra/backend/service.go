package backend

import (
	"context"
	"net/http"

	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/infra"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/usecase/shared"

	"github.com/google/uuid"
)

var _ shared.ServiceBackend = (*Client)(nil)

var ErrUnsupportedKind = errs.New("unsupported service kind")

// servicePath maps a kind to its endpoint family. Towing is filed as an
// emergency job.
func servicePath(kind request.ServiceKind, stage string) (string, error) {
	switch kind {
	case request.KindFuel:
		return "/services/" + stage + "-fuel-service", nil
	case request.KindMaintenance:
		return "/services/" + stage + "-maintenance-service", nil
	case request.KindEmergency, request.KindTowing:
		return "/services/" + stage + "-emergency-service", nil
	default:
		return "", errs.Wrapf(ErrUnsupportedKind, "kind %q", kind)
	}
}

func (c *Client) InitService(ctx context.Context, order shared.ServiceOrder) (pricing.Breakdown, error) {
	path, err := servicePath(order.Kind, "init")
	if err != nil {
		return pricing.Breakdown{}, err
	}

	var resp breakdownResponse
	err = c.do(ctx, call{
		method: http.MethodPost,
		path:   path,
		body:   newServiceRequest(order),
		op:     "init " + order.Kind.String() + " service",
	}, &resp)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return c.toBreakdown(resp)
}

func (c *Client) PlaceService(ctx context.Context, order shared.ServiceOrder) (shared.PlacedOrder, error) {
	path, err := servicePath(order.Kind, "place")
	if err != nil {
		return shared.PlacedOrder{}, err
	}

	cl := call{
		method: http.MethodPost,
		path:   path,
		body:   newServiceRequest(order),
		op:     "place " + order.Kind.String() + " service",
	}
	if order.IdempotencyKey != uuid.Nil {
		cl.headers = map[string]string{headerIdempotencyKey: order.IdempotencyKey.String()}
	}

	var resp placeResponse
	if err := c.do(ctx, cl, &resp); err != nil {
		return shared.PlacedOrder{}, err
	}
	if resp.OrderID == "" {
		return shared.PlacedOrder{}, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, cl.op+": missing order id", nil)
	}

	placed := shared.PlacedOrder{OrderID: resp.OrderID}
	if resp.Pricing != nil {
		b, err := c.toBreakdown(*resp.Pricing)
		if err != nil {
			return shared.PlacedOrder{}, err
		}
		placed.Breakdown = &b
	}
	return placed, nil
}
