package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

type User struct {
	*core.EPResource
}

var userInfoLabels = map[int]string{
	http.StatusUnauthorized: "not authenticated",
	http.StatusForbidden:    "forbidden",
	http.StatusBadGateway:   "authentication service unavailable",
}

// InfoWithContext returns the identity behind the configured token.
func (u *User) InfoWithContext(ctx context.Context) (core.Record, error) {
	path, err := u.Path("info")
	if err != nil {
		return nil, err
	}
	result, err := core.Request[core.Record](ctx, u, "getting user info", http.MethodGet, path, nil, nil)
	return result, core.PrefixDetail(err, userInfoLabels)
}

func (u *User) Info() (core.Record, error) {
	return u.InfoWithContext(u.Ctx())
}

func (u *User) InfoTypedWithContext(ctx context.Context) (*UserInfo, error) {
	record, err := u.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	info := &UserInfo{}
	if err = record.Fill(info); err != nil {
		return nil, err
	}
	return info, nil
}

func (u *User) InfoTyped() (*UserInfo, error) {
	return u.InfoTypedWithContext(u.Ctx())
}
