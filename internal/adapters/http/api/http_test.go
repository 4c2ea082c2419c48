package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/adapters/http/api"
	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
	logging "github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// rejectingStore loads fine and refuses every write.
type rejectingStore struct{}

func (rejectingStore) LoadState(ctx context.Context) (model.State, error) { return model.State{}, nil }
func (rejectingStore) SaveState(ctx context.Context, patch model.StatePatch) error {
	return errors.New("connection refused")
}
func (rejectingStore) Close() error { return nil }

func newRouter(ctx context.Context, opts ...service.Option) (*gin.Engine, *service.Engine) {
	gin.SetMode(gin.TestMode)
	_ = logging.Init()
	e := service.New(opts...)
	So(e.Start(ctx), ShouldBeNil)
	return api.NewServer(e).Router(ctx), e
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	So(json.Unmarshal(w.Body.Bytes(), &v), ShouldBeNil)
	return v
}

const rosterJSON = `[
	{"id":"shubham","name":"Shubham","rating":4.6},
	{"id":"arjun","name":"Arjun","rating":4.8},
	{"id":"meera","name":"Meera","rating":4.1}
]`

func TestServer_Routes(t *testing.T) {
	Convey("Given a router over a started engine with a roster", t, func() {
		ctx := context.Background()
		r, e := newRouter(ctx)
		defer e.Stop(ctx)

		w := do(r, http.MethodPut, "/roster", rosterJSON)
		So(w.Code, ShouldEqual, http.StatusOK)
		So(decode[service.RosterResult](w).NewAvailability, ShouldEqual, 3)

		Convey("Health and stats respond", func() {
			So(do(r, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)

			w := do(r, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[model.SystemStats](w).TotalCoaches, ShouldEqual, 3)
		})

		Convey("Unknown routes return a JSON 404", func() {
			w := do(r, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode[errorBody](w).Code, ShouldEqual, "not_found")
		})

		Convey("The ritika scenario runs end to end", func() {
			w := do(r, http.MethodPut, "/athletes/ritika/primary", `{"coachId":"shubham","athleteName":"Ritika"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			w = do(r, http.MethodPost, "/athletes/ritika/secondary", `{"coachId":"arjun","priority":1}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			w = do(r, http.MethodPost, "/coaches/shubham/unavailable", `{"reason":"on leave"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode[struct {
				Availability model.Availability     `json:"availability"`
				Results      []model.FailoverResult `json:"results"`
			}](w)
			So(body.Availability.Status, ShouldEqual, model.StatusUnavailable)
			So(body.Results, ShouldHaveLength, 1)
			So(body.Results[0].NewPrimaryCoachID, ShouldEqual, "arjun")

			w = do(r, http.MethodGet, "/athletes/ritika", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			a := decode[model.Assignment](w)
			So(a.PrimaryCoachID(), ShouldEqual, "arjun")
			So(a.History, ShouldHaveLength, 4)

			w = do(r, http.MethodGet, "/coaches/available?exclude=meera", "")
			coaches := decode[[]model.Coach](w)
			So(coaches, ShouldHaveLength, 1)
			So(coaches[0].ID, ShouldEqual, "arjun")

			w = do(r, http.MethodGet, "/coaches/arjun/workload", "")
			So(decode[model.Workload](w).CurrentLoad, ShouldEqual, 1)
		})

		Convey("Availability can be patched without failover", func() {
			do(r, http.MethodPut, "/athletes/kabir/primary", `{"coachId":"meera"}`)

			w := do(r, http.MethodPatch, "/coaches/meera/availability", `{"status":"unavailable","maxCapacity":3,"addUnavailableDates":["2024-05-02","2024-05-01"]}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			av := decode[model.Availability](w)
			So(av.MaxCapacity, ShouldEqual, 3)
			So(av.CurrentLoad, ShouldEqual, 1)
			So(av.UnavailableDates, ShouldResemble, []string{"2024-05-01", "2024-05-02"})

			w = do(r, http.MethodGet, "/athletes/kabir", "")
			So(decode[model.Assignment](w).PrimaryCoachID(), ShouldEqual, "meera")
		})

		Convey("Bad input is a 400", func() {
			So(do(r, http.MethodPatch, "/coaches/meera/availability", `{"status":"asleep"}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(r, http.MethodPut, "/athletes/kabir/primary", `{}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(r, http.MethodPut, "/athletes/kabir/primary", `not json`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(r, http.MethodDelete, "/athletes/kabir/coaches/meera?secondary=maybe", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(r, http.MethodDelete, "/athletes/kabir/coaches/meera", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Unknown athletes and coaches are a 404", func() {
			So(do(r, http.MethodGet, "/athletes/nobody", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(r, http.MethodGet, "/coaches/ghost", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(r, http.MethodPost, "/athletes/nobody/secondary", `{"coachId":"arjun"}`).Code, ShouldEqual, http.StatusNotFound)
			So(do(r, http.MethodDelete, "/athletes/nobody/coaches/arjun?secondary=true", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Removing the primary promotes the backup", func() {
			do(r, http.MethodPost, "/athletes", `{"athleteId":"dev","athleteName":"Dev"}`)
			do(r, http.MethodPut, "/athletes/dev/primary", `{"coachId":"meera"}`)
			do(r, http.MethodPost, "/athletes/dev/secondary", `{"coachId":"arjun"}`)

			w := do(r, http.MethodDelete, "/athletes/dev/coaches/meera?secondary=false", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[model.Assignment](w).PrimaryCoachID(), ShouldEqual, "arjun")
		})

		Convey("A CSV roster is merged", func() {
			req := httptest.NewRequest(http.MethodPost, "/roster/csv", strings.NewReader("id,name\nisha,Isha\n"))
			req.Header.Set("Content-Type", "text/csv")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode[[]model.Coach](do(r, http.MethodGet, "/coaches", "")), ShouldHaveLength, 4)

			req = httptest.NewRequest(http.MethodPost, "/roster/csv", strings.NewReader("name\nIsha\n"))
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Decisions are accepted once", func() {
			body := `{"id":"req-9","athleteId":"anya","coachId":"arjun","role":"primary","accepted":true}`
			w := do(r, http.MethodPost, "/requests/decisions", body)
			So(w.Code, ShouldEqual, http.StatusAccepted)

			w = do(r, http.MethodPost, "/requests/decisions", body)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"duplicate":true`)

			w = do(r, http.MethodPost, "/requests/decisions", `{"athleteId":"anya","coachId":"arjun","role":"coach"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestServer_PersistFailure(t *testing.T) {
	Convey("Given an engine whose store rejects writes", t, func() {
		ctx := context.Background()
		r, e := newRouter(ctx, service.WithStore(rejectingStore{}, "rejecting"))
		defer e.Stop(ctx)

		Convey("A mutation answers 503 and still carries the new value", func() {
			w := do(r, http.MethodPut, "/athletes/ritika/primary", `{"coachId":"shubham"}`)

			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			body := decode[errorBody](w)
			So(body.Code, ShouldEqual, "persist_failed")

			var a model.Assignment
			So(json.Unmarshal(body.Data, &a), ShouldBeNil)
			So(a.PrimaryCoachID(), ShouldEqual, "shubham")

			So(do(r, http.MethodGet, "/athletes/ritika", "").Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestServer_Backpressure(t *testing.T) {
	Convey("Given an engine whose decision queue is full", t, func() {
		gin.SetMode(gin.TestMode)
		_ = logging.Init()
		e := service.New(service.WithQueueSize(1))
		r := api.NewServer(e, api.WithCORSOrigins([]string{"https://admin.example"})).Router(context.Background())

		So(do(r, http.MethodPost, "/requests/decisions", `{"id":"a","athleteId":"x","coachId":"y","role":"primary"}`).Code, ShouldEqual, http.StatusAccepted)

		Convey("The next decision is a 429", func() {
			w := do(r, http.MethodPost, "/requests/decisions", `{"id":"b","athleteId":"x","coachId":"y","role":"primary"}`)
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(decode[errorBody](w).Code, ShouldEqual, "backpressure")
		})

		Convey("CORS allows the configured origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set("Origin", "https://admin.example")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://admin.example")
		})
	})
}
