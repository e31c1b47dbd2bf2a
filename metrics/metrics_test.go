package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidswitch/vidswitch/switcher"
)

var _ switcher.Recorder = (*SwitchMetrics)(nil)

func TestSwitchMetrics(t *testing.T) {
	Convey("Given switch metrics on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m, err := New(registry)
		So(err, ShouldBeNil)

		Convey("Outcomes are counted by result", func() {
			m.SwitchFinished(switcher.ResultCompleted, 200*time.Millisecond)
			m.SwitchFinished(switcher.ResultCompleted, 300*time.Millisecond)
			m.SwitchFinished(switcher.ResultStale, time.Millisecond)

			So(testutil.ToFloat64(m.switchesTotal.WithLabelValues("completed")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.switchesTotal.WithLabelValues("stale")), ShouldEqual, 1)
			So(testutil.CollectAndCount(m.switchDuration), ShouldEqual, 1)
		})

		Convey("The generation gauge follows the latest value", func() {
			m.GenerationIssued(3)
			m.GenerationIssued(4)
			So(testutil.ToFloat64(m.generation), ShouldEqual, 4)
		})

		Convey("Registering twice fails", func() {
			_, err := New(registry)
			So(err, ShouldNotBeNil)
		})

		Convey("The handler exposes the collectors", func() {
			m.SwitchFinished(switcher.ResultTimeout, time.Second)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", metricsPath, nil))
			body, _ := io.ReadAll(rec.Result().Body)

			So(rec.Code, ShouldEqual, 200)
			So(string(body), ShouldContainSubstring, `vidswitch_switches_total{result="timeout"} 1`)
			So(string(body), ShouldContainSubstring, "vidswitch_switch_duration_seconds_bucket")
		})
	})
}
