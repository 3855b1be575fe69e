package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"rentwear/internal/app/commands"
)

// IdempotentCommand is implemented by commands that want replay
// protection keyed on a client-supplied token.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // must match the handler result type
}

type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONResultCodec) Decode(data []byte, out any) error { return json.Unmarshal(data, out) }

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays the stored result for commands repeated with the
// same key instead of executing them again. Only successes are
// recorded: a failed command leaves no record, so a retry re-executes
// and surfaces the same typed error the first attempt did. Persisting
// failures would flatten sentinels into plain strings and break the
// errors.Is mapping at the transport layer.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	guard := idempotencyGuard{store: store, codec: codec}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return nextFn(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			rec, found, err := guard.store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				return guard.replay(rec, idCmd)
			}
			result, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if saveErr := guard.capture(ctx, key, result); saveErr != nil {
				return nil, saveErr
			}
			return result, nil
		})
	}
}

type idempotencyGuard struct {
	store IdempotencyStore
	codec ResultCodec
}

func (g idempotencyGuard) replay(rec IdempotencyRecord, cmd IdempotentCommand) (any, error) {
	proto := cmd.ResultPrototype()
	if proto == nil {
		return nil, errMissingPrototype
	}
	if err := g.codec.Decode(rec.Payload, proto); err != nil {
		return nil, err
	}
	if rv := reflect.ValueOf(proto); rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Interface(), nil
	}
	return proto, nil
}

func (g idempotencyGuard) capture(ctx context.Context, key string, result any) error {
	rec := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
	if result != nil {
		payload, err := g.codec.Encode(result)
		if err != nil {
			return err
		}
		rec.Payload = payload
	}
	return g.store.Save(ctx, rec)
}
