package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	const op = "Login"

	body, err := c.do(ctx, request{op: op, method: http.MethodPost, path: "/login", body: req})
	if err != nil {
		return nil, err
	}

	var resp domain.LoginResponse
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: errors.New("response has no access_token")}
	}
	return &resp, nil
}
