package http_handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
)

func TestContact_OK(t *testing.T) {
	f := newFixture(t)
	h := NewContactHandler(f.svc)

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/api/contact", mustJSONBody(t, map[string]string{
		"name": "Sam", "email": "sam@b.co", "message": "Hello there",
	})))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var got dto.ContactResponse
	mustReadJSON(t, rr.Body, &got)
	if !got.Success {
		t.Fatalf("expected success")
	}
	if n := len(f.contacts.All()); n != 1 {
		t.Fatalf("expected one stored message, got %d", n)
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0].RecipientEmail != "" || f.mailer.sent[0].Message != "Hello there" {
		t.Fatalf("unexpected dispatch: %+v", f.mailer.sent)
	}
}

func TestContact_Validation(t *testing.T) {
	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing message", map[string]string{"name": "Sam", "email": "sam@b.co"}, "All fields are required."},
		{"bad email", map[string]string{"name": "Sam", "email": "sam", "message": "hi"}, "Invalid email address."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			h := NewContactHandler(f.svc)

			rr := httptest.NewRecorder()
			h.Submit(rr, httptest.NewRequest(http.MethodPost, "/api/contact", mustJSONBody(t, tc.body)))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			var got errorBody
			mustReadJSON(t, rr.Body, &got)
			if got.Error != tc.want {
				t.Fatalf("want %q, got %+v", tc.want, got)
			}
			if len(f.contacts.All()) != 0 || len(f.mailer.sent) != 0 {
				t.Fatalf("nothing should be stored or sent")
			}
		})
	}
}

func TestContact_DeliveryFailureIs500ButStored(t *testing.T) {
	f := newFixture(t)
	f.mailer.failMsg = "EmailJS configuration missing: EMAILJS_SERVICE_ID"
	h := NewContactHandler(f.svc)

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/api/contact", mustJSONBody(t, map[string]string{
		"name": "Sam", "email": "sam@b.co", "message": "Hello",
	})))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var got errorBody
	mustReadJSON(t, rr.Body, &got)
	if got.Success || got.Error != "EmailJS configuration missing: EMAILJS_SERVICE_ID" {
		t.Fatalf("unexpected: %+v", got)
	}
	if len(f.contacts.All()) != 1 {
		t.Fatalf("message should stay stored")
	}
}
