package query

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func Int(r *http.Request, key string) (val int, present bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be integer", key)
	}
	return n, true, nil
}

func IntAny(r *http.Request, keys ...string) (val int, present bool, err error) {
	for _, k := range keys {
		v, ok, e := Int(r, k)
		if e != nil {
			return 0, false, e
		}
		if ok {
			return v, true, nil
		}
	}
	return 0, false, nil
}

func Str(r *http.Request, key string) (val string, present bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func StrAny(r *http.Request, keys ...string) (val string, present bool) {
	for _, k := range keys {
		if v, ok := Str(r, k); ok {
			return v, true
		}
	}
	return "", false
}
