package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/bgugger/atelier/apps/api/echo"
	testutil "github.com/bgugger/atelier/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, app.usrRepo, "Bea", "bea@test.ch", "s3cr3t", true)

	tests := []httpTest{
		{
			name: "empty body", body: marchallObj(t, echoapi.LoginRequest{}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown user", body: marchallObj(t, echoapi.LoginRequest{Email: "lol@test.ch", Password: "s3cr3t"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, echoapi.LoginRequest{Email: "bea@test.ch", Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "ok", body: marchallObj(t, echoapi.LoginRequest{Email: "bea@test.ch", Password: "s3cr3t"}),
			wantCode: http.StatusOK,
		},
		{
			name: "email is case-insensitive", body: marchallObj(t, echoapi.LoginRequest{Email: "BEA@Test.CH", Password: "s3cr3t"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/admin/login", tt.body)
			app.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d; wantCode %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				if tt.wantData != nil {
					checkCodeAndData(t, tt, rec)
				}
				return
			}

			var resp echoapi.LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshalling response: %v", err)
			}
			if resp.Token == "" {
				t.Fatal("empty token")
			}

			claims := new(echoapi.Claims)
			_, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(app.conf.SecretKey), nil
			})
			if err != nil {
				t.Fatalf("parsing token: %v", err)
			}
			if !claims.IsAdmin {
				t.Error("claims.IsAdmin = false; want true")
			}
			if claims.Email != "bea@test.ch" {
				t.Errorf("claims.Email = %q", claims.Email)
			}
		})
	}
}

func Test_userApi_tokenRefresh(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateUser(t, app.usrRepo, "Bea", "bea@test.ch", "s3cr3t", true)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/admin/token-refresh")
		app.server.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/admin/token-refresh", getToken(t, app.conf, admin))
		app.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; want 200: %s", rec.Code, rec.Body.String())
		}
		var resp echoapi.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("empty token")
		}
	})
}
