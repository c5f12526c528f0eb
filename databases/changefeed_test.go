package databases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/databases/mocks"
)

func TestBroker_SubscribeAndUnsubscribe(t *testing.T) {
	b := databases.NewBroker()

	var first, second []databases.ChangeEvent
	unsubscribe := b.Subscribe(func(e databases.ChangeEvent) { first = append(first, e) })
	b.Subscribe(func(e databases.ChangeEvent) { second = append(second, e) })

	b.Publish(databases.ChangeEvent{Kind: databases.ArrestReportsChanged, Operation: "insert"})
	unsubscribe()
	unsubscribe()
	b.Publish(databases.ChangeEvent{Kind: databases.OfficersChanged, Operation: "update"})

	require.Len(t, first, 1)
	assert.Equal(t, databases.ArrestReportsChanged, first[0].Kind)
	assert.False(t, first[0].At.IsZero())
	require.Len(t, second, 2)
	assert.Equal(t, databases.OfficersChanged, second[1].Kind)
}

type decodeEvent struct {
	op string
	id interface{}
}

func TestWatchChanges(t *testing.T) {
	oid := primitive.NewObjectID()
	events := make(chan databases.ChangeEvent, 8)
	b := databases.NewBroker()
	b.Subscribe(func(e databases.ChangeEvent) { events <- e })

	dbHelper := &mocks.DatabaseHelper{}
	for name, ev := range map[string]*decodeEvent{
		"arrestReports": {op: "insert", id: oid},
		"users":         {op: "update", id: "abc"},
		"statutes":      nil,
	} {
		coll := &mocks.CollectionHelper{}
		cs := &mocks.ChangeStreamHelper{}
		if ev != nil {
			cs.On("Next", mock.Anything).Return(true).Once()
			cs.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
				raw, _ := bson.Marshal(bson.M{"operationType": ev.op, "documentKey": bson.M{"_id": ev.id}})
				_ = bson.Unmarshal(raw, args.Get(0))
			})
		}
		cs.On("Next", mock.Anything).Return(false)
		cs.On("Err").Return(nil)
		cs.On("Close", mock.Anything).Return(nil)
		coll.On("Watch", mock.Anything, mock.Anything).Return(cs, nil)
		dbHelper.On("Collection", name).Return(coll)
	}

	require.NoError(t, databases.WatchChanges(context.Background(), dbHelper, b))

	got := map[databases.ChangeKind]databases.ChangeEvent{}
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case e := <-events:
			got[e.Kind] = e
		case <-timeout:
			t.Fatal("timed out waiting for change events")
		}
	}
	assert.Equal(t, "insert", got[databases.ArrestReportsChanged].Operation)
	assert.Equal(t, oid.Hex(), got[databases.ArrestReportsChanged].DocumentID)
	assert.Equal(t, "abc", got[databases.OfficersChanged].DocumentID)
}
