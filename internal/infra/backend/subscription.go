package backend

import (
	"context"
	"net/http"

	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/infra"
	"fleet-console/internal/usecase/shared"
)

var _ shared.SubscriptionBackend = (*Client)(nil)

func (c *Client) EstimateSubscription(ctx context.Context, in shared.EstimateInput) (subscription.Estimate, error) {
	var resp estimateResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/subscriptions/estimate",
		body: estimateRequest{
			AssetCount:   in.AssetCount,
			BillingCycle: in.BillingCycle.String(),
			Category:     in.Category.String(),
		},
		op: "estimate subscription",
	}, &resp)
	if err != nil {
		return subscription.Estimate{}, err
	}
	return estimateFromResponse(in, resp), nil
}

func (c *Client) InitAssignment(ctx context.Context, in shared.AssignmentInit) (shared.PaymentAuthorization, error) {
	var resp assignInitResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/subscriptions/assign/init",
		body:   newAssignInitRequest(in),
		op:     "init subscription payment",
	}, &resp)
	if err != nil {
		return shared.PaymentAuthorization{}, err
	}
	if resp.Reference == "" || resp.AuthorizationURL == "" {
		return shared.PaymentAuthorization{}, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "init subscription payment: incomplete authorization", nil)
	}
	return shared.PaymentAuthorization{
		AuthorizationURL: resp.AuthorizationURL,
		Reference:        resp.Reference,
	}, nil
}

func (c *Client) VerifyAssignment(ctx context.Context, in shared.AssignmentVerify) (bool, error) {
	var resp assignVerifyResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/subscriptions/assign/verify",
		body: assignVerifyRequest{
			PlanID:       in.PlanID,
			PaymentRef:   in.PaymentRef,
			StartDate:    in.StartDate.Format(dateLayout),
			BillingCycle: in.BillingCycle.String(),
		},
		op: "verify subscription payment",
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}
