// internal/clients/membership_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"loyaltyhub/internal/membership"
)

// MembershipClient is a typed HTTP client for the membership API. The
// userID argument of every call is sent as the X-USER-ID header.
type MembershipClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMembershipClient(baseURL string) *MembershipClient {
	return &MembershipClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func (c *MembershipClient) AddMembership(ctx context.Context, userID string, membershipType membership.MembershipType, point int) (*membership.MembershipSummary, error) {
	body := map[string]interface{}{"membership_type": membershipType, "point": point}

	var summary membership.MembershipSummary
	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/memberships", userID, body, http.StatusCreated, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *MembershipClient) GetMembershipList(ctx context.Context, userID string) ([]*membership.MembershipSummary, error) {
	var summaries []*membership.MembershipSummary
	err := c.do(ctx, http.MethodGet, c.baseURL+"/api/v1/memberships", userID, nil, http.StatusOK, &summaries)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *MembershipClient) GetMembership(ctx context.Context, userID string, id uuid.UUID) (*membership.MembershipDetail, error) {
	var detail membership.MembershipDetail
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/api/v1/memberships/%s", c.baseURL, id), userID, nil, http.StatusOK, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *MembershipClient) RemoveMembership(ctx context.Context, userID string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/api/v1/memberships/%s", c.baseURL, id), userID, nil, http.StatusOK, nil)
}

func (c *MembershipClient) AccumulateMembershipPoint(ctx context.Context, userID string, id uuid.UUID, point int) error {
	body := map[string]interface{}{"point": point}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("%s/api/v1/memberships/%s/accumulate", c.baseURL, id), userID, body, http.StatusOK, nil)
}

func (c *MembershipClient) do(ctx context.Context, method, url, userID string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set(membership.UserIDHeader, userID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError reconstructs a tagged domain error from the response payload
// when the code is recognized, so callers can match on the taxonomy.
func decodeError(resp *http.Response) error {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	switch membership.ErrorCode(payload.Code) {
	case membership.CodeMembershipNotFound:
		return membership.ErrMembershipNotFound
	case membership.CodeDuplicatedMembershipRegister:
		return membership.ErrDuplicatedMembershipRegister
	case membership.CodeNotMembershipOwner:
		return membership.ErrNotMembershipOwner
	}
	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, payload.Message)
}
