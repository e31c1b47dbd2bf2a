package manifest

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidswitch/vidswitch/filesystem"
)

func TestPrune(t *testing.T) {
	Convey("Given a manifest cache with old and fresh entries", t, func() {
		fs := filesystem.API()
		dir := filepath.Join("/gc", "manifests")
		now := time.Now()

		old := filepath.Join(dir, "old.json")
		fresh := filepath.Join(dir, "fresh.json")

		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)
		So(fs.WriteFile(old, []byte("{}"), 0o644), ShouldBeNil)
		So(fs.WriteFile(fresh, []byte("{}"), 0o644), ShouldBeNil)
		So(fs.Chtimes(old, now.Add(-2*time.Hour), now.Add(-2*time.Hour)), ShouldBeNil)

		Reset(func() {
			_ = fs.RemoveAll("/gc")
		})

		Convey("Only expired entries are removed", func() {
			So(prune(dir, time.Hour, now), ShouldEqual, 1)

			exists, _ := fs.Exists(old)
			So(exists, ShouldBeFalse)

			exists, _ = fs.Exists(fresh)
			So(exists, ShouldBeTrue)
		})

		Convey("A missing directory removes nothing", func() {
			So(prune("/gc/missing", time.Hour, now), ShouldEqual, 0)
		})
	})
}
