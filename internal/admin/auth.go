package admin

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop-backoffice/internal/domain/auth"
)

// StaffKeyHeader carries the staff API key.
const StaffKeyHeader = "api_key"

// basicRealm makes browsers prompt for credentials. The password is the
// staff API key; the user name is ignored.
const basicRealm = `Basic realm="Shop administration", charset="UTF-8"`

type staffKeyCtx struct{}

// StaffKeyFromContext returns the key authenticated by StaffOnly.
func StaffKeyFromContext(ctx context.Context) (*auth.StaffKey, bool) {
	k, ok := ctx.Value(staffKeyCtx{}).(*auth.StaffKey)
	return k, ok
}

// StaffOnly rejects requests without an active staff key with 401. The key
// is read from StaffKeyHeader or, for browsers, the HTTP Basic password.
func (h *Handler) StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		k, ok := h.authenticate(r.Context(), presentedKey(r))
		if !ok {
			w.Header().Set("WWW-Authenticate", basicRealm)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), staffKeyCtx{}, k)
		ctx = zctx.Base(ctx, zctx.From(ctx).With(zap.String("staff", k.Name)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func presentedKey(r *http.Request) string {
	if key := r.Header.Get(StaffKeyHeader); key != "" {
		return key
	}
	if _, password, ok := r.BasicAuth(); ok {
		return password
	}
	return ""
}

func (h *Handler) authenticate(ctx context.Context, key string) (*auth.StaffKey, bool) {
	if key == "" {
		return nil, false
	}
	hash := auth.HashKey(key, h.pepper)

	k, err := h.staffKeys.FindByHash(ctx, hash)
	if err != nil {
		return nil, false
	}

	// The stored hash must match byte for byte even after a successful lookup.
	want, err := hex.DecodeString(k.KeyHash)
	if err != nil {
		return nil, false
	}
	got, _ := hex.DecodeString(hash)
	if subtle.ConstantTimeCompare(got, want) != 1 || !k.Active {
		return nil, false
	}
	return k, true
}
