package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestCheckFileExist(t *testing.T) {
	convey.Convey("files, directories and missing paths", t, func() {
		dir := t.TempDir()
		file := filepath.Join(dir, "a.conf")
		convey.So(os.WriteFile(file, []byte("x"), 0o644), convey.ShouldBeNil)

		exist, err := CheckFileExist(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeTrue)

		exist, err = CheckFileExist(dir)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeFalse)

		exist, err = CheckFileExist(filepath.Join(dir, "none"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeFalse)
	})
}

func TestOpenOutput(t *testing.T) {
	convey.Convey("empty path writes to the fallback", t, func() {
		var buf bytes.Buffer
		w, err := OpenOutput("-", &buf)
		convey.So(err, convey.ShouldBeNil)
		w.Write([]byte("hi"))
		convey.So(w.Close(), convey.ShouldBeNil)
		convey.So(buf.String(), convey.ShouldEqual, "hi")
	})

	convey.Convey("missing directories are created", t, func() {
		path := filepath.Join(t.TempDir(), "out", "x.json")
		w, err := OpenOutput(path, nil)
		convey.So(err, convey.ShouldBeNil)
		w.Write([]byte("{}"))
		convey.So(w.Close(), convey.ShouldBeNil)

		b, err := os.ReadFile(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(b), convey.ShouldEqual, "{}")
	})
}
