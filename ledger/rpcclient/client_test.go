package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/types"
	"github.com/stretchr/testify/assert"
)

type rpcHandler func(method string, params []json.RawMessage) (any, *Error)

func newTestServer(t *testing.T, handle rpcHandler) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     uint64            `json:"id"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handle(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestReadObject(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "ledger_getObject", method)
		return &ledger.RawObject{
			ID:     "0xb1",
			Type:   "0xpkg::ballot::Ballot",
			Fields: map[string]any{"title": "Board election"},
		}, nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	obj, err := client.ReadObject(context.Background(), "0xb1")
	assert.NoError(t, err)
	assert.Equal(t, types.ObjectID("0xb1"), obj.ID)
	assert.Equal(t, "Board election", obj.Fields["title"])
}

func TestReadObjectNotFound(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		return nil, &Error{Code: -32000, Message: "object not found"}
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	_, err := client.ReadObject(context.Background(), "0xmissing")
	assert.Equal(t, ledger.ErrObjectNotFound, err)
}

func TestReadObjectNullResult(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		return nil, nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	_, err := client.ReadObject(context.Background(), "0xmissing")
	assert.Equal(t, ledger.ErrObjectNotFound, err)
}

func TestReadObjectsBatchKeepsCardinality(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "ledger_multiGetObjects", method)
		return []any{
			map[string]any{"objectId": "0xb1", "type": "0xpkg::ballot::Ballot", "fields": map[string]any{}},
			nil,
		}, nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	objs, err := client.ReadObjectsBatch(context.Background(), []types.ObjectID{"0xb1", "0xb2"})
	assert.NoError(t, err)
	assert.Len(t, objs, 2)
	assert.NotNil(t, objs[0])
	assert.Nil(t, objs[1])
}

func TestReadObjectsBatchCardinalityMismatch(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		return []any{}, nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	_, err := client.ReadObjectsBatch(context.Background(), []types.ObjectID{"0xb1"})
	assert.Error(t, err)
}

func TestSubmitTransaction(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "ledger_submitTransaction", method)

		var tx ledger.Transaction
		assert.NoError(t, json.Unmarshal(params[0], &tx))
		assert.Equal(t, "ballot::cast_vote", tx.Function)

		return "0xtx1", nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL, Account: "0xvoter"})
	txID, err := client.SubmitTransaction(context.Background(), &ledger.Transaction{
		Sender:   "0xvoter",
		Function: "ballot::cast_vote",
		Args:     []any{"0xb1", "0xd1", 2, "0x6"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "0xtx1", txID)
}

func TestSubmitTransactionRPCError(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		return nil, &Error{Code: 4, Message: "account has already voted"}
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	_, err := client.SubmitTransaction(context.Background(), &ledger.Transaction{Function: "ballot::cast_vote"})
	assert.ErrorContains(t, err, "already voted")
}

func TestWaitForFinality(t *testing.T) {
	calls := 0
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "ledger_getTransactionStatus", method)
		calls++
		if calls < 2 {
			return "pending", nil
		}
		return "final", nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, client.WaitForFinality(ctx, "0xtx1"))
	assert.GreaterOrEqual(t, calls, 2)
}

func TestWaitForFinalityFailedTransaction(t *testing.T) {
	server := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		return "failed", nil
	})
	defer server.Close()

	client := New(Config{Endpoint: server.URL})
	assert.Error(t, client.WaitForFinality(context.Background(), "0xtx1"))
}

func TestCurrentAccount(t *testing.T) {
	client := New(Config{Endpoint: "http://localhost:1", Account: "0xvoter"})
	account, ok := client.CurrentAccount()
	assert.True(t, ok)
	assert.Equal(t, types.Address("0xvoter"), account)

	anonymous := New(Config{Endpoint: "http://localhost:1"})
	_, ok = anonymous.CurrentAccount()
	assert.False(t, ok)
}
