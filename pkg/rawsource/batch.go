package rawsource

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DecodeAll decodes tokens with up to workers goroutines. Results keep the
// input order. The only error is the context's, when it is cancelled before
// every token has been decoded.
func DecodeAll(ctx context.Context, c *Codec, tokens []string, workers int) ([]Value, error) {
	out := make([]Value, len(tokens))
	err := runIndexed(ctx, len(tokens), workers, func(i int) {
		out[i] = c.Decode(tokens[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeAll is the encode counterpart of DecodeAll.
func EncodeAll(ctx context.Context, c *Codec, values []Value, workers int) ([]string, error) {
	out := make([]string, len(values))
	err := runIndexed(ctx, len(values), workers, func(i int) {
		out[i] = c.Encode(values[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func runIndexed(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
