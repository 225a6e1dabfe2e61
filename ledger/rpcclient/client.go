// Copyright © 2018 Kowala SEZC <info@kowala.tech>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rpcclient implements the ledger capabilities over a JSON-RPC
// endpoint. It is the production backend; the engine itself only sees the
// capability interfaces.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/params"
	"github.com/kowala-tech/ballot/types"
)

// Config carries the endpoint settings of the rpc client.
type Config struct {
	// Endpoint is the JSON-RPC URL of the ledger node.
	Endpoint string

	// HTTPTimeout bounds each individual request.
	HTTPTimeout time.Duration

	// Account is the locally configured sender address; empty means no
	// wallet is connected.
	Account types.Address
}

// Client talks JSON-RPC to a ledger node. It implements ledger.Backend and
// ledger.AccountProvider.
type Client struct {
	cfg    Config
	client *http.Client
	reqID  atomic.Uint64
}

var _ ledger.Backend = (*Client)(nil)

func New(cfg Config) *Client {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// Error is a JSON-RPC error payload surfaced as a Go error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(&rpcRequest{
		JSONRPC: "2.0",
		ID:      c.reqID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope rpcResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if result == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	return json.Unmarshal(envelope.Result, result)
}

// ReadObject implements ledger.ObjectReader.
func (c *Client) ReadObject(ctx context.Context, id types.ObjectID) (*ledger.RawObject, error) {
	var obj *ledger.RawObject
	if err := c.call(ctx, "ledger_getObject", []any{string(id)}, &obj); err != nil {
		if isNotFound(err) {
			return nil, ledger.ErrObjectNotFound
		}
		return nil, err
	}
	if obj == nil {
		return nil, ledger.ErrObjectNotFound
	}
	return obj, nil
}

// ReadObjectsBatch implements ledger.BatchReader. The result keeps the input
// cardinality; absent objects stay nil.
func (c *Client) ReadObjectsBatch(ctx context.Context, ids []types.ObjectID) ([]*ledger.RawObject, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	objs := make([]*ledger.RawObject, 0, len(ids))
	if err := c.call(ctx, "ledger_multiGetObjects", []any{raw}, &objs); err != nil {
		return nil, err
	}
	if len(objs) != len(ids) {
		return nil, fmt.Errorf("bulk read returned %d objects for %d ids", len(objs), len(ids))
	}
	return objs, nil
}

// ReadOwnedObjects implements ledger.OwnedObjectReader.
func (c *Client) ReadOwnedObjects(ctx context.Context, owner types.Address, typeTag string) ([]*ledger.RawObject, error) {
	objs := make([]*ledger.RawObject, 0)
	if err := c.call(ctx, "ledger_getOwnedObjects", []any{string(owner), typeTag}, &objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// ReadOnlyCall implements ledger.CallReader.
func (c *Client) ReadOnlyCall(ctx context.Context, function string, args ...any) ([]any, error) {
	results := make([]any, 0)
	if err := c.call(ctx, "ledger_inspectCall", []any{function, args}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SubmitTransaction implements ledger.TransactionSender. Signature and
// broadcast happen node-side for the configured account.
func (c *Client) SubmitTransaction(ctx context.Context, tx *ledger.Transaction) (string, error) {
	var txID string
	if err := c.call(ctx, "ledger_submitTransaction", []any{tx}, &txID); err != nil {
		return "", err
	}
	return txID, nil
}

// WaitForFinality implements ledger.FinalityWaiter. It polls the
// transaction status until the effects are final, the transaction fails, or
// the context is canceled.
func (c *Client) WaitForFinality(ctx context.Context, txID string) error {
	queryTicker := time.NewTicker(params.FinalityPollInterval)
	defer queryTicker.Stop()

	for {
		var status string
		err := c.call(ctx, "ledger_getTransactionStatus", []any{txID}, &status)
		switch {
		case err != nil:
			return err
		case status == "final":
			return nil
		case status == "failed":
			return fmt.Errorf("transaction %s failed", txID)
		}
		log.Debug("Transaction not yet final")

		// Wait for the next round.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-queryTicker.C:
		}
	}
}

// CurrentAccount implements ledger.AccountProvider.
func (c *Client) CurrentAccount() (types.Address, bool) {
	if c.cfg.Account == "" {
		return "", false
	}
	return c.cfg.Account, true
}

func isNotFound(err error) bool {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code == -32000 || strings.Contains(strings.ToLower(rpcErr.Message), "not found")
	}
	return false
}
