package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// Client talks to the WhatsApp Business Cloud API messages endpoint.
type Client struct {
	BaseURL       string
	AccessToken   string
	PhoneNumberID string
	Template      string
	HTTPClient    *http.Client
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type sendTemplateRequest struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Template         struct {
		Name     string `json:"name"`
		Language struct {
			Code string `json:"code"`
		} `json:"language"`
		Components []templateComponent `json:"components"`
	} `json:"template"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// TransportParams fills the dispatch placeholders of the status
// template. Nil means the placeholders are sent as "N/A".
type TransportParams struct {
	TransportName    string
	LRNumber         string
	TransportContact string
}

func NewClient(baseURL, accessToken, phoneNumberID, template string) *Client {
	return &Client{
		BaseURL:       baseURL,
		AccessToken:   accessToken,
		PhoneNumberID: phoneNumberID,
		Template:      template,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var nonDigits = regexp.MustCompile(`\D`)

// normalizeNumber converts an Indian mobile number to E.164 form.
// 10-digit numbers get the +91 prefix; 12-digit numbers starting with
// 91 get a plus sign. Anything else is rejected.
func normalizeNumber(mobile string) (string, error) {
	digits := nonDigits.ReplaceAllString(mobile, "")
	switch {
	case len(digits) == 10:
		return "+91" + digits, nil
	case len(digits) == 12 && digits[:2] == "91":
		return "+" + digits, nil
	}
	return "", fmt.Errorf("invalid mobile number format: %s", mobile)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// SendStatusUpdate sends the order-status template message. The
// template carries four body parameters: status plus the three
// transport fields.
func (c *Client) SendStatusUpdate(ctx context.Context, mobile, status string, transport *TransportParams) error {
	recipient, err := normalizeNumber(mobile)
	if err != nil {
		return err
	}

	params := []templateParameter{{Type: "text", Text: status}}
	if transport != nil {
		params = append(params,
			templateParameter{Type: "text", Text: orNA(transport.TransportName)},
			templateParameter{Type: "text", Text: orNA(transport.LRNumber)},
			templateParameter{Type: "text", Text: orNA(transport.TransportContact)},
		)
	} else {
		params = append(params,
			templateParameter{Type: "text", Text: "N/A"},
			templateParameter{Type: "text", Text: "N/A"},
			templateParameter{Type: "text", Text: "N/A"},
		)
	}

	reqBody := sendTemplateRequest{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "template",
	}
	reqBody.Template.Name = c.Template
	reqBody.Template.Language.Code = "en_US"
	reqBody.Template.Components = []templateComponent{{Type: "body", Parameters: params}}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var response sendResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode >= 300 || response.Error != nil {
		msg := resp.Status
		if response.Error != nil {
			msg = response.Error.Message
		}
		return fmt.Errorf("whatsapp api error: %s", msg)
	}
	return nil
}
