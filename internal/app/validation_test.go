package app_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/pkg/client"
)

func (e *env) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func TestCreateEndpointsRejectMissingFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	anon := e.session(t)

	user := e.session(t)
	_, err := user.Register(ctx, client.Registration{Email: "v@t.com", Password: "secret1", FullName: "V"})
	require.NoError(t, err)
	_, err = user.Login(ctx, "v@t.com", "secret1")
	require.NoError(t, err)

	var lab struct {
		ID string `json:"id"`
	}
	_, err = admin.Call(ctx, http.MethodPost, "api/lab-tests", map[string]any{
		"testName": "CBC", "price": 300, "category": "blood",
	}, &lab)
	require.NoError(t, err)
	require.NotEmpty(t, lab.ID)

	now := time.Now().UTC()
	cases := []struct {
		name  string
		as    *client.Session
		path  string
		body  map[string]any
		model any
	}{
		{"register without fullName", anon, "api/auth/register",
			map[string]any{"email": "n@t.com", "password": "secret1"}, &models.User{}},
		{"vendor without businessType", anon, "api/vendor/register",
			map[string]any{"vendorName": "X", "email": "x@t.com", "password": "secret1", "phone": "1"}, &models.Vendor{}},
		{"product without name", admin, "api/products",
			map[string]any{"price": 10, "category": "nutrition"}, &models.Product{}},
		{"offer without code", admin, "api/offers",
			map[string]any{"discountType": "fixed", "discountValue": 10, "validFrom": now, "validUntil": now.Add(time.Hour)}, &models.Offer{}},
		{"address without pincode", user, "api/addresses",
			map[string]any{"fullName": "V", "phone": "1", "addressLine1": "L1", "city": "Pune", "state": "MH"}, &models.Address{}},
		{"review without productId", user, "api/reviews",
			map[string]any{"rating": 5}, &models.Review{}},
		{"prescription without file", user, "api/prescriptions",
			map[string]any{"doctorName": "Dr. R"}, &models.Prescription{}},
		{"lab test without testName", admin, "api/lab-tests",
			map[string]any{"price": 100, "category": "blood"}, &models.LabTest{}},
		{"booking without collectionType", user, "api/lab-tests/" + lab.ID + "/bookings",
			map[string]any{"collectionDate": now.Add(24 * time.Hour)}, &models.LabTestBooking{}},
		{"consultation without doctorName", user, "api/consultations",
			map[string]any{"consultationType": "video", "startTime": now.Add(time.Hour)}, &models.DoctorConsultation{}},
		{"article without title", admin, "api/articles",
			map[string]any{"content": "text", "category": "wellness"}, &models.HealthArticle{}},
		{"health concern without name", admin, "api/health-concerns",
			map[string]any{"description": "d"}, &models.HealthConcern{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := e.count(t, tc.model)
			_, err := tc.as.Call(ctx, http.MethodPost, tc.path, tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))
			assert.Equal(t, "validation_error", apiCode(t, err))
			assert.Equal(t, before, e.count(t, tc.model))
		})
	}
}

func TestRegisterLongPasswordDuplicateIsConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a' + byte(i%26)
	}

	s := e.session(t)
	_, err := s.Register(ctx, client.Registration{Email: "long@t.com", Password: string(long), FullName: "Long"})
	require.NoError(t, err)
	_, err = s.Register(ctx, client.Registration{Email: "long@t.com", Password: string(long), FullName: "Long"})
	assert.Equal(t, http.StatusConflict, client.StatusOf(err))
	assert.Equal(t, "conflict", apiCode(t, err))

	_, err = s.Login(ctx, "long@t.com", string(long))
	require.NoError(t, err)
}
