package exts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const CookieAccessToken = "polls_atk"

var ErrUnauthenticated = errors.New("unauthenticated")

type PayloadClaims struct {
	jwt.RegisteredClaims

	Name  string   `json:"name"`
	Perms []string `json:"perms"`
}

func (v PayloadClaims) Account() (models.Account, error) {
	id, err := strconv.ParseUint(v.Subject, 10, 64)
	if err != nil || id == 0 {
		return models.Account{}, fmt.Errorf("invalid subject %q", v.Subject)
	}
	return models.Account{
		ID:    uint(id),
		Name:  v.Name,
		Perms: v.Perms,
	}, nil
}

// TokenReader verifies the HS256 access tokens issued by the identity provider.
type TokenReader struct {
	secret []byte
}

func NewTokenReader(secret string) (*TokenReader, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return &TokenReader{secret: []byte(secret)}, nil
}

func (v *TokenReader) ReadJwt(token string) (*PayloadClaims, error) {
	claims := new(PayloadClaims)
	tk, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	} else if !tk.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (v *TokenReader) WriteJwt(claims PayloadClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func extractAccessToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); len(header) > 0 {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Cookies(CookieAccessToken)
}

// ContextMiddleware puts the account of a valid access token into the "user" local.
// Requests without a usable token carry on anonymously.
func ContextMiddleware(reader *TokenReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if reader == nil {
			return c.Next()
		}
		atk := extractAccessToken(c)
		if len(atk) == 0 {
			return c.Next()
		}

		claims, err := reader.ReadJwt(atk)
		if err != nil {
			log.Debug().Err(err).Msg("Ignored an invalid access token.")
			return c.Next()
		}
		account, err := claims.Account()
		if err != nil {
			log.Debug().Err(err).Msg("Ignored an access token without a usable subject.")
			return c.Next()
		}

		c.Locals("user", account)
		return c.Next()
	}
}

func GetAccount(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals("user").(models.Account)
	return account, ok
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := GetAccount(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, ErrUnauthenticated.Error())
	}
	return nil
}

func EnsureGrantedPerm(c *fiber.Ctx, key string) error {
	if err := EnsureAuthenticated(c); err != nil {
		return err
	}
	account, _ := GetAccount(c)
	if !account.HasPermNode(key) {
		return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("missing permission: %s", key))
	}
	return nil
}
