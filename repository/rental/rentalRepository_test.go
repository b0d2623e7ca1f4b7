package rentalrepo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mademanik/minjeminapp/model"
	rentalrepo "github.com/mademanik/minjeminapp/repository/rental"
	"github.com/mademanik/minjeminapp/repository/rest"
)

func newRepo(t *testing.T, handler http.HandlerFunc) rentalrepo.Repo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return rentalrepo.New(rest.New(srv.URL))
}

func TestListRequests_PathAndFilter(t *testing.T) {
	var gotPath, gotQuery string
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := repo.ListRequests(context.Background(), "tok", model.RentalFilter{Status: "PENDING"})
	require.NoError(t, err)
	require.Equal(t, "/rentals/request", gotPath)
	require.Equal(t, "status=PENDING", gotQuery)

	_, err = repo.ListMine(context.Background(), "tok", model.RentalFilter{})
	require.NoError(t, err)
	require.Equal(t, "/rentals/my", gotPath)
	require.Empty(t, gotQuery)
}

func TestUpdate_SendsOnlyPatchFields(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/rentals/9", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.Len(t, raw, 2, "an update carries exactly status and paid")
		require.Equal(t, "APPROVED", raw["status"])
		require.Equal(t, true, raw["paid"])

		_, _ = w.Write([]byte(`{"id":9,"status":"APPROVED","paid":true}`))
	})

	updated, err := repo.Update(context.Background(), "tok", 9, model.RentalPatch{
		Status: model.RentalApproved,
		Paid:   true,
	})
	require.NoError(t, err)
	require.Equal(t, model.RentalApproved, updated.Status)
}

func TestTransitions_PostToVerbPaths(t *testing.T) {
	var gotMethod, gotPath string
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"id":4}`))
	})

	ctx := context.Background()
	_, err := repo.Approve(ctx, "tok", 4)
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/rentals/4/approve", gotPath)

	_, err = repo.Start(ctx, "tok", 4)
	require.NoError(t, err)
	require.Equal(t, "/rentals/4/start", gotPath)

	_, err = repo.Complete(ctx, "tok", 4)
	require.NoError(t, err)
	require.Equal(t, "/rentals/4/complete", gotPath)

	_, err = repo.Cancel(ctx, "tok", 4)
	require.NoError(t, err)
	require.Equal(t, "/rentals/4/cancel", gotPath)
}

func TestCreate_PostsToRentals(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rentals", r.URL.Path)
		var in model.Rental
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, int64(0), in.ID)
		in.ID = 31
		in.Status = model.RentalPending
		_ = json.NewEncoder(w).Encode(in)
	})

	created, err := repo.Create(context.Background(), "tok", model.Rental{
		ItemID: 3, StartDate: "2026-05-01", EndDate: "2026-05-10",
	})
	require.NoError(t, err)
	require.Equal(t, int64(31), created.ID)
	require.Equal(t, model.RentalPending, created.Status)
}
