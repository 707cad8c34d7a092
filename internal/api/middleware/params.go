package middleware

import (
	"net/url"

	"github.com/labstack/echo/v4"
)

// UnescapePathParams decodes percent-encoded path parameters. Echo matches
// routes on the raw path, so a client that encodes "a@x.com" as "a%40x.com"
// would otherwise reach the self-access gate and the store with the encoded
// form. Values that fail to decode are left as they are.
func UnescapePathParams() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			values := c.ParamValues()
			if len(values) == 0 {
				return next(c)
			}

			decoded := make([]string, len(values))
			for i, v := range values {
				decoded[i] = v
				if s, err := url.PathUnescape(v); err == nil {
					decoded[i] = s
				}
			}
			c.SetParamValues(decoded...)
			return next(c)
		}
	}
}
