package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidswitch/vidswitch/constant"
)

func TestGet(t *testing.T) {
	Convey("Given a manifest server", t, func() {
		var agent atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent.Store(r.UserAgent())
			if r.URL.Path == "/missing" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(`{"sources":[]}`))
		}))
		Reset(server.Close)

		Convey("The body is returned and the user agent is set", func() {
			body, err := Get(context.Background(), server.URL+"/movie.json")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, `{"sources":[]}`)
			So(agent.Load(), ShouldEqual, constant.UserAgent)
		})

		Convey("Non-2xx responses are errors", func() {
			_, err := Get(context.Background(), server.URL+"/missing")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "404")
		})

		Convey("A cancelled context aborts the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Get(ctx, server.URL+"/movie.json")
			So(err, ShouldNotBeNil)
		})
	})
}
