package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const identityToolkitBaseURL = "https://identitytoolkit.googleapis.com/v1"

// AccountClient performs email/password flows against the Identity Toolkit
// REST API. The Admin SDK has no password sign-in, so the login surface
// goes through the same endpoint a browser client would.
type AccountClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAccountClient(apiKey string) *AccountClient {
	return &AccountClient{
		apiKey:  apiKey,
		baseURL: identityToolkitBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Credential is the provider's answer to a successful sign-in or sign-up.
type Credential struct {
	UID          string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type accountRequest struct {
	Email             string `json:"email,omitempty"`
	Password          string `json:"password,omitempty"`
	IDToken           string `json:"idToken,omitempty"`
	RequestType       string `json:"requestType,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken,omitempty"`
}

type accountError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email/password for a credential.
func (c *AccountClient) SignIn(ctx context.Context, email, password string) (*Credential, error) {
	return c.post(ctx, "accounts:signInWithPassword", accountRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
}

// SignUp creates a new account.
func (c *AccountClient) SignUp(ctx context.Context, email, password string) (*Credential, error) {
	return c.post(ctx, "accounts:signUp", accountRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
}

// SendVerificationEmail asks the provider to mail a verification link to
// the account behind idToken.
func (c *AccountClient) SendVerificationEmail(ctx context.Context, idToken string) error {
	_, err := c.post(ctx, "accounts:sendOobCode", accountRequest{
		RequestType: "VERIFY_EMAIL",
		IDToken:     idToken,
	})
	return err
}

func (c *AccountClient) post(ctx context.Context, endpoint string, reqBody accountRequest) (*Credential, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr accountError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, &ProviderError{Code: apiErr.Error.Message}
		}
		return nil, fmt.Errorf("identity toolkit: status %d", resp.StatusCode)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// ProviderError carries the provider's raw error code, e.g. EMAIL_NOT_FOUND
// or "WEAK_PASSWORD : Password should be at least 6 characters".
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string { return e.Code }

// UserMessage maps provider error codes to fixed user-facing strings.
// Unrecognized codes fall back to the provider's raw message.
func UserMessage(err error) string {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	code := pe.Code
	if i := strings.IndexByte(code, ' '); i > 0 {
		code = code[:i]
	}
	switch code {
	case "INVALID_EMAIL":
		return "That email address looks invalid."
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "Invalid username or password."
	case "EMAIL_EXISTS":
		return "An account already exists with this email."
	case "WEAK_PASSWORD":
		return "Password should be at least 6 characters."
	default:
		return pe.Code
	}
}
