package backend

import (
	"context"
	"net/http"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/infra"
	"fleet-console/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

var _ shared.Directory = (*Client)(nil)

func (c *Client) ListAssets(ctx context.Context) ([]shared.AssetSnapshot, error) {
	var resp []assetResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/assets", op: "list assets"}, &resp); err != nil {
		return nil, err
	}

	assets := make([]shared.AssetSnapshot, 0, len(resp))
	if err := copier.Copy(&assets, &resp); err != nil {
		return nil, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "copy assets", err)
	}
	return assets, nil
}

func (c *Client) ListSavedLocations(ctx context.Context) ([]shared.SavedLocationSnapshot, error) {
	var resp []savedLocationResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/locations", op: "list saved locations"}, &resp); err != nil {
		return nil, err
	}

	locations := make([]shared.SavedLocationSnapshot, 0, len(resp))
	if err := copier.Copy(&locations, &resp); err != nil {
		return nil, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "copy saved locations", err)
	}
	for i, r := range resp {
		if r.Latitude == nil || r.Longitude == nil {
			continue
		}
		coords, err := request.NewCoordinates(*r.Latitude, *r.Longitude)
		if err != nil {
			// Bad coordinates are dropped; the id alone is enough to submit.
			continue
		}
		locations[i].Coordinates = &coords
	}
	return locations, nil
}
