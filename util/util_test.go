package util

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidswitch/vidswitch/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "source", "sources"), ShouldEqual, "1 source")
		So(Quantify(0, "source", "sources"), ShouldEqual, "0 sources")
		So(Quantify(2, "source", "sources"), ShouldEqual, "2 sources")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("manifest cache"), ShouldEqual, "Manifest cache")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("movies/bunny.json"), ShouldEqual, "bunny")
		So(FileStem("master.m3u8"), ShouldEqual, "master")
		So(FileStem("trailer"), ShouldEqual, "trailer")
	})
}

func TestIgnore(t *testing.T) {
	Convey("Ignore runs the function", t, func() {
		called := false
		Ignore(func() error {
			called = true
			return errors.New("ignored")
		})
		So(called, ShouldBeTrue)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files on disk", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/sockets/nested", 0o755), ShouldBeNil)
		So(fs.WriteFile("/sockets/nested/a.sock", nil, 0o600), ShouldBeNil)
		So(fs.WriteFile("/single.json", nil, 0o600), ShouldBeNil)

		Convey("Directories are removed recursively", func() {
			So(Delete("/sockets"), ShouldBeNil)
			exists, _ := fs.Exists("/sockets/nested/a.sock")
			So(exists, ShouldBeFalse)
		})

		Convey("Files are removed", func() {
			So(Delete("/single.json"), ShouldBeNil)
			exists, _ := fs.Exists("/single.json")
			So(exists, ShouldBeFalse)
		})

		Convey("Missing paths are not an error", func() {
			So(Delete("/nowhere"), ShouldBeNil)
		})
	})
}
