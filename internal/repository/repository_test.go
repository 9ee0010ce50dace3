package repository_test

import (
	"context"
	"testing"
	"time"

	"boardsync/internal/model"
	"boardsync/internal/repository"
	"boardsync/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users *repository.UserRepository, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: email, HashedPassword: "x"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestBoardRepository_MembershipAndListing(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	boards := repository.NewBoardRepository(db)
	members := repository.NewBoardMemberRepository(db)

	owner := seedUser(t, users, "owner@example.com")
	guest := seedUser(t, users, "guest@example.com")
	stranger := seedUser(t, users, "stranger@example.com")

	board := &model.Board{Title: "Roadmap", OwnerID: owner.ID, ListIDs: model.IDList{}}
	require.NoError(t, boards.Create(ctx, board))
	assert.Equal(t, model.DefaultBoardColor, board.Color)
	require.NoError(t, members.AddMember(ctx, board.ID, owner.ID, model.RoleOwner))
	require.NoError(t, members.AddMember(ctx, board.ID, guest.ID, model.RoleMember))
	// re-adding the owner as a member keeps the owner role
	require.NoError(t, members.AddMember(ctx, board.ID, owner.ID, model.RoleMember))

	list, err := members.GetMembers(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	roles := map[uuid.UUID]string{}
	for _, m := range list {
		roles[m.UserID] = m.Role
	}
	assert.Equal(t, model.RoleOwner, roles[owner.ID])
	assert.Equal(t, model.RoleMember, roles[guest.ID])

	ok, err := members.IsMember(ctx, board.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = members.IsMember(ctx, board.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	forGuest, err := boards.GetForUser(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, forGuest, 1)
	assert.Equal(t, board.ID, forGuest[0].ID)

	ids, err := members.BoardIDsForUser(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBoardRepository_UpdateLeavesListIDs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	boards := repository.NewBoardRepository(db)

	listID := uuid.New()
	board := &model.Board{Title: "Old", OwnerID: uuid.New(), ListIDs: model.IDList{listID}}
	require.NoError(t, boards.Create(ctx, board))

	stale := *board
	stale.Title = "New"
	stale.ListIDs = model.IDList{}
	require.NoError(t, boards.Update(ctx, &stale))

	got, err := boards.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, model.IDList{listID}, got.ListIDs)
}

func TestBoardRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	boards := repository.NewBoardRepository(testutil.NewDB(t))

	_, err := boards.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.ErrorIs(t, boards.Delete(ctx, uuid.New()), repository.ErrBoardNotFound)
	assert.ErrorIs(t, boards.SetListIDs(ctx, uuid.New(), model.IDList{}), repository.ErrBoardNotFound)
}

func TestListRepository_OrderAndCardIDs(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	lists := repository.NewListRepository(db)
	boardID := uuid.New()

	var created []model.List
	for i, title := range []string{"Todo", "Doing", "Done"} {
		l := model.List{Title: title, BoardID: boardID, Position: i}
		require.NoError(t, lists.Create(ctx, &l))
		created = append(created, l)
	}

	require.NoError(t, lists.SetPositions(ctx, []uuid.UUID{created[2].ID, created[0].ID, created[1].ID}))

	got, err := lists.GetByBoardID(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Done", "Todo", "Doing"}, []string{got[0].Title, got[1].Title, got[2].Title})
	for i, l := range got {
		assert.Equal(t, i, l.Position)
	}

	cards := model.IDList{uuid.New(), uuid.New()}
	require.NoError(t, lists.SetCardIDs(ctx, created[0].ID, cards))
	l, err := lists.GetByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, cards, l.CardIDs)

	top, err := lists.MaxPositionByBoardID(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, 2, top)

	require.NoError(t, lists.Delete(ctx, created[2].ID))
	top, err = lists.MaxPositionByBoardID(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, 2, top, "deleting the first list leaves the highest position alone")

	top, err = lists.MaxPositionByBoardID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, -1, top)

	assert.ErrorIs(t, lists.SetPositions(ctx, []uuid.UUID{uuid.New()}), repository.ErrListNotFound)
	assert.ErrorIs(t, lists.Delete(ctx, uuid.New()), repository.ErrListNotFound)
}

func TestCardRepository_CommentsFollowCardDeletion(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cards := repository.NewCardRepository(db)
	boardID, listID := uuid.New(), uuid.New()

	keep := &model.Card{Title: "keep", ListID: uuid.New(), BoardID: boardID}
	drop := &model.Card{Title: "drop", ListID: listID, BoardID: boardID}
	require.NoError(t, cards.Create(ctx, keep))
	require.NoError(t, cards.Create(ctx, drop))
	require.NoError(t, cards.AddComment(ctx, &model.CardComment{CardID: keep.ID, UserID: uuid.New(), Text: "a"}))
	require.NoError(t, cards.AddComment(ctx, &model.CardComment{CardID: drop.ID, UserID: uuid.New(), Text: "b"}))

	require.NoError(t, cards.DeleteByList(ctx, listID))

	_, err := cards.GetByID(ctx, drop.ID)
	assert.ErrorIs(t, err, repository.ErrCardNotFound)

	comments, err := cards.GetComments(ctx, []uuid.UUID{keep.ID, drop.ID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "a", comments[0].Text)

	byID, err := cards.GetByIDs(ctx, []uuid.UUID{keep.ID, drop.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Contains(t, byID, keep.ID)
}

func TestConnectorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	connectors := repository.NewConnectorRepository(testutil.NewDB(t))
	boardID := uuid.New()

	c := &model.Connector{BoardID: boardID, FromElement: "a", ToElement: "b"}
	require.NoError(t, connectors.Create(ctx, c))
	assert.Equal(t, model.LineStraight, c.LineStyle)
	assert.Equal(t, model.ArrowArrow, c.ArrowStyle)
	assert.Equal(t, model.DefaultConnectorColor, c.Color)

	c.Label = "depends on"
	c.LineStyle = model.LineCurved
	require.NoError(t, connectors.Update(ctx, c))

	got, err := connectors.GetByBoardID(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "depends on", got[0].Label)
	assert.Equal(t, model.LineCurved, got[0].LineStyle)

	require.NoError(t, connectors.Delete(ctx, c.ID))
	_, err = connectors.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrConnectorNotFound)
}

func TestActivityRepository_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	activity := repository.NewActivityRepository(testutil.NewDB(t))
	boardID := uuid.New()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []string{"list:created", "card:created", "card:moved"} {
		require.NoError(t, activity.Append(ctx, &model.BoardActivity{
			BoardID:   boardID,
			Action:    action,
			UserID:    uuid.New(),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := activity.Recent(ctx, boardID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "card:moved", got[0].Action)
}
