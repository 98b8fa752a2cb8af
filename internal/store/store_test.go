package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowatch/notice-api/internal/model"
)

func testRecords() []model.Notification {
	return []model.Notification{
		{
			ID:             "mee-2024-001",
			Title:          "关于发布国家先进污染防治技术目录的公告",
			Department:     "生态环境部",
			DepartmentCode: "MEE",
			PublishDate:    "2024-01-10",
			Category:       model.CategoryPolicyRelease,
			Tags:           []string{"重点关注"},
			Keywords:       []string{"污染防治", "技术目录"},
		},
		{
			ID:             "most-2024-007",
			Title:          "国家重点研发计划项目申报通知",
			Department:     "科技部",
			DepartmentCode: "MOST",
			PublishDate:    "2024-01-12",
			Deadline:       "2024-02-15",
			Category:       model.CategoryProjectCall,
			Tags:           []string{},
		},
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	records := testRecords()
	records[1].ID = records[0].ID

	_, err := New(records, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestSnapshotPreservesOrderAndIsolation(t *testing.T) {
	st, err := New(testRecords(), "2024-01-12T08:00:00Z")
	require.NoError(t, err)

	snap := st.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "mee-2024-001", snap[0].ID)
	assert.Equal(t, "most-2024-007", snap[1].ID)

	// Mutating the snapshot must not leak into the store.
	snap[0].Tags = append(snap[0].Tags, "scribble")
	fresh, err := st.Get("mee-2024-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"重点关注"}, fresh.Tags)
}

func TestToggleFavoriteIsInvolution(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	once, err := st.ToggleFavorite("mee-2024-001")
	require.NoError(t, err)
	assert.True(t, once.IsFavorited)

	twice, err := st.ToggleFavorite("mee-2024-001")
	require.NoError(t, err)
	assert.False(t, twice.IsFavorited)

	original := testRecords()[0]
	assert.Equal(t, original, twice)
}

func TestToggleFavoriteLeavesOtherRecordsAlone(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	_, err = st.ToggleFavorite("mee-2024-001")
	require.NoError(t, err)

	other, err := st.Get("most-2024-007")
	require.NoError(t, err)
	assert.False(t, other.IsFavorited)
}

func TestSetNote(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	n, err := st.SetNote("most-2024-007", "跟进申报材料")
	require.NoError(t, err)
	assert.Equal(t, "跟进申报材料", n.Notes)

	// Empty string clears the note.
	n, err = st.SetNote("most-2024-007", "")
	require.NoError(t, err)
	assert.Empty(t, n.Notes)
}

func TestAddTagIsIdempotent(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	first, err := st.AddTag("mee-2024-001", "申报中")
	require.NoError(t, err)
	assert.Equal(t, []string{"重点关注", "申报中"}, first.Tags)

	second, err := st.AddTag("mee-2024-001", "申报中")
	require.NoError(t, err)
	assert.Equal(t, first.Tags, second.Tags)
}

func TestAddTagTrimsAndSkipsBlank(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	n, err := st.AddTag("most-2024-007", "  资金  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"资金"}, n.Tags)

	n, err = st.AddTag("most-2024-007", "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{"资金"}, n.Tags)
}

func TestRemoveTag(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	n, err := st.RemoveTag("mee-2024-001", "重点关注")
	require.NoError(t, err)
	assert.Empty(t, n.Tags)

	// Removing an absent tag is a no-op, not an error.
	n, err = st.RemoveTag("mee-2024-001", "不存在")
	require.NoError(t, err)
	assert.Empty(t, n.Tags)
}

func TestAddThenRemoveTagRestoresRecord(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	_, err = st.AddTag("most-2024-007", "x")
	require.NoError(t, err)
	n, err := st.RemoveTag("most-2024-007", "x")
	require.NoError(t, err)

	assert.Equal(t, testRecords()[1], n)
}

func TestMutationsOnUnknownIDReturnErrNotFound(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	_, err = st.ToggleFavorite("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.SetNote("nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.AddTag("nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.RemoveTag("nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteCount(t *testing.T) {
	st, err := New(testRecords(), "")
	require.NoError(t, err)

	assert.Equal(t, 0, st.FavoriteCount())
	_, err = st.ToggleFavorite("mee-2024-001")
	require.NoError(t, err)
	assert.Equal(t, 1, st.FavoriteCount())
}
