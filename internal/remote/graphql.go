package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault"
)

const searchQuery = `query($pattern: String!) {
	vault {
		credentials(pattern: $pattern) { service username secret }
	}
}`

const pushOneMutation = `mutation($credential: CredentialIn!) {
	saveCredential(input: {credential: $credential}) { count }
}`

const pushManyMutation = `mutation($credentials: [CredentialIn!]!) {
	saveCredentials(input: {credentials: $credentials}) { count }
}`

const deleteMutation = `mutation($pattern: String!, $position: Int) {
	deleteCredentials(input: {pattern: $pattern, position: $position}) { count }
}`

const replaceAllMutation = `mutation($credentials: [CredentialIn!]!) {
	replaceCredentials(input: {credentials: $credentials}) { count }
}`

// graphqlRequest is the JSON body sent to the vault GraphQL endpoint.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type credentialRow struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type countPayload struct {
	Count int `json:"count"`
}

// graphqlResponse covers every operation the client issues; only the field
// matching the executed query is populated.
type graphqlResponse struct {
	Data struct {
		Vault *struct {
			Credentials []credentialRow `json:"credentials"`
		} `json:"vault"`
		SaveCredential     *countPayload `json:"saveCredential"`
		SaveCredentials    *countPayload `json:"saveCredentials"`
		DeleteCredentials  *countPayload `json:"deleteCredentials"`
		ReplaceCredentials *countPayload `json:"replaceCredentials"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client implements Vault against a GraphQL endpoint.
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient returns a Client for the given GraphQL endpoint URL. The HTTP
// timeout is a safety net alongside context cancellation.
func NewClient(endpointURL string, timeout time.Duration) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, accessToken string, req graphqlRequest) (*graphqlResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteVault, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		return nil, common.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrRemoteVault, resp.StatusCode)
	}

	var gqlResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", common.ErrRemoteVault, err)
	}
	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrRemoteVault, gqlResp.Errors[0].Message)
	}
	return &gqlResp, nil
}

func (c *Client) Search(ctx context.Context, accessToken, pattern string) ([]vault.EncryptedCredential, error) {
	resp, err := c.do(ctx, accessToken, graphqlRequest{
		Query:     searchQuery,
		Variables: map[string]any{"pattern": pattern},
	})
	if err != nil {
		return nil, err
	}
	if resp.Data.Vault == nil {
		return nil, nil
	}

	records := make([]vault.EncryptedCredential, 0, len(resp.Data.Vault.Credentials))
	for _, row := range resp.Data.Vault.Credentials {
		records = append(records, vault.EncryptedCredential{Service: row.Service, Username: row.Username, Secret: row.Secret})
	}
	return records, nil
}

func (c *Client) PushOne(ctx context.Context, accessToken string, rec vault.EncryptedCredential) (int, error) {
	resp, err := c.do(ctx, accessToken, graphqlRequest{
		Query:     pushOneMutation,
		Variables: map[string]any{"credential": toRow(rec)},
	})
	if err != nil {
		return 0, err
	}
	if resp.Data.SaveCredential == nil {
		return 0, fmt.Errorf("%w: missing saveCredential payload", common.ErrRemoteVault)
	}
	return resp.Data.SaveCredential.Count, nil
}

func (c *Client) PushMany(ctx context.Context, accessToken string, recs []vault.EncryptedCredential) (int, error) {
	resp, err := c.do(ctx, accessToken, graphqlRequest{
		Query:     pushManyMutation,
		Variables: map[string]any{"credentials": toRows(recs)},
	})
	if err != nil {
		return 0, err
	}
	if resp.Data.SaveCredentials == nil {
		return 0, fmt.Errorf("%w: missing saveCredentials payload", common.ErrRemoteVault)
	}
	return resp.Data.SaveCredentials.Count, nil
}

func (c *Client) Delete(ctx context.Context, accessToken, pattern string, position int) error {
	variables := map[string]any{"pattern": pattern, "position": nil}
	if position >= 0 {
		variables["position"] = position
	}
	_, err := c.do(ctx, accessToken, graphqlRequest{Query: deleteMutation, Variables: variables})
	return err
}

func (c *Client) ReplaceAll(ctx context.Context, accessToken string, recs []vault.EncryptedCredential) (int, error) {
	resp, err := c.do(ctx, accessToken, graphqlRequest{
		Query:     replaceAllMutation,
		Variables: map[string]any{"credentials": toRows(recs)},
	})
	if err != nil {
		return 0, err
	}
	if resp.Data.ReplaceCredentials == nil {
		return 0, fmt.Errorf("%w: missing replaceCredentials payload", common.ErrRemoteVault)
	}
	return resp.Data.ReplaceCredentials.Count, nil
}

func toRow(rec vault.EncryptedCredential) map[string]any {
	return map[string]any{"service": rec.Service, "username": rec.Username, "secret": rec.Secret}
}

func toRows(recs []vault.EncryptedCredential) []map[string]any {
	rows := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, toRow(rec))
	}
	return rows
}
