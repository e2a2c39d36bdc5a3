package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testJWT() JWT {
	return JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour}
}

func TestJWT_RoundTrip(t *testing.T) {
	j := testJWT()
	tok, exp, err := j.Sign(Claims{Name: "ops", Role: "admin"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) < 55*time.Minute {
		t.Fatalf("expiry too soon: %v", exp)
	}

	c, err := j.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.Name != "ops" || c.Role != "admin" {
		t.Fatalf("claims=%+v", c)
	}
	if c.Issuer != "quantdesk-hub" {
		t.Fatalf("issuer=%s", c.Issuer)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, _, err := testJWT().Sign(Claims{Role: "viewer"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other := JWT{Secret: []byte("different"), TokenTTL: time.Hour}
	if _, err := other.Verify(tok); err == nil {
		t.Fatalf("expected verify failure with wrong secret")
	}
}

func TestJWT_Expired(t *testing.T) {
	j := testJWT()
	past := jwt.NewNumericDate(time.Now().Add(-time.Minute))
	tok, _, err := j.Sign(Claims{
		Role:             "viewer",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := j.Verify(tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestJWT_RejectsWrongAlg(t *testing.T) {
	// A token signed with "none" must not verify.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin"})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := testJWT().Verify(tok); err == nil {
		t.Fatalf("expected alg=none to fail")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"abc", ""},
		{"", ""},
		{"Basic abc", ""},
	}
	for _, tc := range cases {
		if got := BearerToken(tc.in); got != tc.want {
			t.Fatalf("BearerToken(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestNewAPIKeyPrefix(t *testing.T) {
	k, err := newAPIKey()
	if err != nil {
		t.Fatalf("new key: %v", err)
	}
	if !strings.HasPrefix(k, "qd_") {
		t.Fatalf("key=%s want qd_ prefix", k)
	}
	if len(k) < 20 {
		t.Fatalf("key too short: %s", k)
	}
}
