package middleware

import (
	"strings"

	"trip-service/src/pkg/token"
	"trip-service/src/pkg/utils"

	httpError "trip-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const (
	localsAuthKey  = "auth"
	localsTokenKey = "authToken"
)

// VerifyBearer validates the Authorization header and stores the resolved
// claim. Identity, organization and roles are treated as already-resolved
// inputs from here on.
func VerifyBearer(cfg *viper.Viper) fiber.Handler {
	secret := []byte(cfg.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claim := new(token.Claim)
		parsed, err := jwt.ParseWithClaims(raw, claim, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "invalid bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(localsAuthKey, claim)
		ctx.Locals(localsTokenKey, raw)
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *token.Claim {
	if claim, ok := ctx.Locals(localsAuthKey).(*token.Claim); ok {
		return claim
	}
	return &token.Claim{}
}

func GetToken(ctx *fiber.Ctx) string {
	if raw, ok := ctx.Locals(localsTokenKey).(string); ok {
		return raw
	}
	return ""
}
