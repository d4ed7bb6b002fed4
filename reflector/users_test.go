package reflector_test

import (
	"net/http/httptest"
	"testing"
)

func TestUsers(t *testing.T) {
	testCases := []struct {
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{method: "GET", target: "/mapping/users", wantStatus: 200, wantBody: "get users"},
		{method: "POST", target: "/mapping/users", wantStatus: 200, wantBody: "post users"},
		{method: "GET", target: "/mapping/users/7", wantStatus: 200, wantBody: "get userID: 7"},
		{method: "PATCH", target: "/mapping/users/7", wantStatus: 200, wantBody: "update userId: 7"},
		{method: "DELETE", target: "/mapping/users/7", wantStatus: 200, wantBody: "delete userId: 7"},
		{method: "GET", target: "/mapping/users/user%2Da", wantStatus: 200, wantBody: "get userID: user-a"},
		{method: "PUT", target: "/mapping/users", wantStatus: 405, wantBody: "405 METHOD NOT ALLOWED: PUT /mapping/users"},
		{method: "POST", target: "/mapping/users/7", wantStatus: 405, wantBody: "405 METHOD NOT ALLOWED: POST /mapping/users/7"},
		{method: "GET", target: "/mapping/users/7/posts", wantStatus: 404, wantBody: "404 NOT FOUND: /mapping/users/7/posts"},
	}

	hs := newHarness(t)
	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := hs.do(httptest.NewRequest(tc.method, tc.target, nil))
			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Body.String(); got != tc.wantBody {
				t.Errorf("expected %q, got %q", tc.wantBody, got)
			}
		})
	}
}
