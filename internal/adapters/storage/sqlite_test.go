package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	storage "github.com/okian/meeple/internal/adapters/storage"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sqlite store", t, func() {
		path := filepath.Join(t.TempDir(), "state.db")
		store, err := storage.NewSQLiteStore(ctx, path)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When loading a fresh database", func() {
			players, sessions, err := store.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then both collections are empty", func() {
				So(players, ShouldBeEmpty)
				So(sessions, ShouldBeEmpty)
			})
		})

		Convey("When saving and loading state", func() {
			So(store.Save(ctx, samplePlayers(), sampleSessions()), ShouldBeNil)

			players, sessions, err := store.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then the state round-trips intact", func() {
				So(players, ShouldResemble, samplePlayers())
				So(sessions, ShouldResemble, sampleSessions())
			})
		})

		Convey("When saving twice", func() {
			So(store.Save(ctx, samplePlayers(), sampleSessions()), ShouldBeNil)
			So(store.Save(ctx, nil, nil), ShouldBeNil)

			players, sessions, err := store.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then the second save wins", func() {
				So(players, ShouldBeEmpty)
				So(sessions, ShouldBeEmpty)
			})
		})
	})
}
