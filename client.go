package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// TransportError is any network or HTTP-level failure from a remote
// call. The reconciler logs these and keeps going; nothing escalates
// them to abort the run.
type TransportError struct {
	Method string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: API call failed with status %d", e.Method, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ZabbixClient wraps the three JSON-RPC methods this tool uses. All
// calls go to a single endpoint with a bearer token; the endpoint,
// credentials and logger are fixed at construction.
type ZabbixClient struct {
	endpoint string
	token    string
	httpc    *http.Client
	logger   zerolog.Logger
}

func NewZabbixClient(endpoint, token string, timeout time.Duration, logger zerolog.Logger) *ZabbixClient {
	return &ZabbixClient{
		endpoint: endpoint,
		token:    token,
		httpc:    &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int         `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call posts one JSON-RPC request and decodes the result member into
// out. A 200 response carrying an error payload instead of a result is
// logged and left as an empty result, so callers see it as "nothing
// found" rather than a failure (matches the server-side no-op the API
// performs in that case).
func (c *ZabbixClient) call(method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}

	start := time.Now()
	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	rpcCount.WithLabelValues(method).Inc()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}
	defer resp.Body.Close()
	defer func() {
		rpcDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &TransportError{Method: method, Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Err: err}
	}

	var envelope rpcResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return &TransportError{Method: method, Err: fmt.Errorf("unmarshaling response body: %w", err)}
	}
	if envelope.Error != nil {
		c.logger.Warn().
			Str("method", method).
			Int("code", envelope.Error.Code).
			Str("message", envelope.Error.Message).
			Str("data", envelope.Error.Data).
			Msg("API returned a JSON-RPC error payload, treating result as empty")
	}
	if len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &TransportError{Method: method, Err: fmt.Errorf("unmarshaling result: %w", err)}
	}
	return nil
}

// GroupID resolves a host-group name to its ID. found is false when no
// group matches; that is not an error. If several groups share the name
// the first one wins, with a warning, since the API gives no way to
// disambiguate an exact-name filter.
func (c *ZabbixClient) GroupID(name string) (id string, found bool, err error) {
	params := map[string]interface{}{
		"output": "extend",
		"filter": map[string]string{"name": name},
	}
	var groups []HostGroup
	if err := c.call("hostgroup.get", params, &groups); err != nil {
		return "", false, err
	}
	if len(groups) == 0 {
		return "", false, nil
	}
	if len(groups) > 1 {
		c.logger.Warn().Str("group", name).Int("matches", len(groups)).
			Msg("Group name matched multiple groups, using the first")
	}
	return groups[0].GroupID, true, nil
}

// Hosts lists the hosts in a group with their names and full tag sets.
// A host record without a hostid is a contract violation by the API and
// comes back as an error instead of being silently skipped.
func (c *ZabbixClient) Hosts(groupID string) ([]Host, error) {
	params := map[string]interface{}{
		"groupids":   groupID,
		"output":     "name",
		"selectTags": []string{"tag", "value"},
	}
	var hosts []Host
	if err := c.call("host.get", params, &hosts); err != nil {
		return nil, err
	}
	for i, h := range hosts {
		if h.HostID == "" {
			return nil, fmt.Errorf("host.get: host record %d in group %s has no hostid", i, groupID)
		}
	}
	return hosts, nil
}

// UpdateHostTags replaces a host's full tag list. The API treats the
// tags field as an overwrite, not a patch.
func (c *ZabbixClient) UpdateHostTags(hostID string, tags []Tag) error {
	params := map[string]interface{}{
		"hostid": hostID,
		"tags":   tags,
	}
	var result json.RawMessage
	return c.call("host.update", params, &result)
}
