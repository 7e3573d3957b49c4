package curly

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestSchema(t *testing.T) {
	convey.Convey("idents default to names and headers stay out of the keyword table", t, func() {
		s := MustSchema("Repo",
			HeaderField("id"),
			StringField("url"),
			StringField("branches", WithIdent("branch"), Multi()),
		)
		convey.So(s.Name(), convey.ShouldEqual, "Repo")

		f, ok := s.Field("url")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(f.Ident, convey.ShouldEqual, "url")

		_, _, ok = s.lookup("branch")
		convey.So(ok, convey.ShouldBeTrue)
		_, _, ok = s.lookup("branches")
		convey.So(ok, convey.ShouldBeFalse)
		_, _, ok = s.lookup("id")
		convey.So(ok, convey.ShouldBeFalse)

		h, ok := s.Header()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(h.Name, convey.ShouldEqual, "id")
		convey.So(h.Ident, convey.ShouldEqual, "")

		fields := s.Fields()
		convey.So(len(fields), convey.ShouldEqual, 3)
		fields[0].Name = "changed"
		h, _ = s.Header()
		convey.So(h.Name, convey.ShouldEqual, "id")
	})

	convey.Convey("a header may share its name with another field's ident", t, func() {
		_, err := NewSchema("S", HeaderField("id"), StringField("ident", WithIdent("id")))
		convey.So(err, convey.ShouldBeNil)
	})

	sub := MustSchema("Sub", StringField("a"))
	invalid := map[string][]Field{
		"String with schema":     {{Name: "a", Kind: KindString, Schema: sub}},
		"multi String default":   {StringField("a", Multi(), WithDefault("x"))},
		"Section without schema": {SectionField("a", nil)},
		"Section default":        {SectionField("a", sub, WithDefault("x"))},
		"two headers":            {HeaderField("a"), HeaderField("b")},
		"Header ident":           {{Name: "a", Kind: KindHeader, Ident: "x"}},
		"Header multi":           {{Name: "a", Kind: KindHeader, Multi: true}},
		"Header schema":          {{Name: "a", Kind: KindHeader, Schema: sub}},
		"Header default":         {{Name: "a", Kind: KindHeader, HasDefault: true}},
		"duplicate ident":        {StringField("a"), StringField("b", WithIdent("a"))},
		"duplicate name":         {StringField("a"), StringField("a", WithIdent("b"))},
		"unknown kind":           {{Name: "a"}},
		"empty name":             {{Kind: KindString}},
	}

	for name, fields := range invalid {
		convey.Convey("rejects "+name, t, func() {
			s, err := NewSchema("S", fields...)
			convey.So(s, convey.ShouldBeNil)
			convey.So(errors.Is(err, ErrSchema), convey.ShouldBeTrue)
			convey.So(func() { MustSchema("S", fields...) }, convey.ShouldPanic)
		})
	}

	convey.Convey("error names the schema and field", t, func() {
		_, err := NewSchema("Repo", HeaderField("id"), HeaderField("other"))
		convey.So(err.Error(), convey.ShouldEqual, "invalid schema: Repo.other: Header is duplicated")
	})

	convey.Convey("declared fields are copied", t, func() {
		fields := []Field{StringField("a")}
		s := MustSchema("S", fields...)
		fields[0].Name = "b"
		_, ok := s.Field("a")
		convey.So(ok, convey.ShouldBeTrue)
	})
}
