package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrishop-chatbot-backend/models"
)

// mockKnowledgeStore implements KnowledgeStore for testing.
type mockKnowledgeStore struct {
	entries []models.KnowledgeEntry
	calls   int
	err     error
}

func (m *mockKnowledgeStore) ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	m.calls++
	return m.entries, m.err
}

func riceBlast() models.KnowledgeEntry {
	return models.KnowledgeEntry{
		DiseaseName: "Bệnh đạo ôn lá lúa",
		Symptoms: []string{
			"vết bệnh hình thoi trên lá",
			"viền nâu xung quanh vết bệnh",
			"lá khô cháy thành mảng",
		},
		ActiveIngredients: []string{"Tricyclazole", "Isoprothiolane"},
	}
}

func TestRetrieveDiseaseNameMatch(t *testing.T) {
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{riceBlast()}}
	svc := NewKnowledgeService(store)

	match, err := svc.Retrieve(context.Background(), "lúa tôi bị đạo ôn")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, "Bệnh đạo ôn lá lúa", match.Entry.DiseaseName)
	assert.GreaterOrEqual(t, match.Score, 5)
}

func TestRetrieveSymptomOverlapOnly(t *testing.T) {
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{riceBlast()}}
	svc := NewKnowledgeService(store)

	// no disease-name token in the message, two symptoms share a token
	match, err := svc.Retrieve(context.Background(), "lá có vết bệnh hình thoi viền nâu")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, 2, match.Score)
	assert.Equal(t, "Bệnh đạo ôn lá lúa", match.Entry.DiseaseName)
}

func TestRetrieveScoreGrowsWithSymptomMatches(t *testing.T) {
	fewSymptoms := models.KnowledgeEntry{
		DiseaseName: "Bệnh khảm",
		Symptoms:    []string{"vien nau quanh vet"},
	}
	moreSymptoms := models.KnowledgeEntry{
		DiseaseName: "Bệnh thán thư",
		Symptoms:    []string{"vet lom tron", "vien nau ro ret", "hinh thoi keo dai"},
	}
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{fewSymptoms, moreSymptoms}}
	svc := NewKnowledgeService(store)

	match, err := svc.Retrieve(context.Background(), "trai co vet lom, vien nau, hinh thoi")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, "Bệnh thán thư", match.Entry.DiseaseName)
	assert.Equal(t, 3, match.Score)
}

func TestRetrieveNoKeywordsSkipsStore(t *testing.T) {
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{riceBlast()}}
	svc := NewKnowledgeService(store)

	match, err := svc.Retrieve(context.Background(), "tôi bị")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 0, store.calls, "keyword-less message must not scan the knowledge base")
}

func TestRetrieveZeroScoreIsNoResult(t *testing.T) {
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{riceBlast()}}
	svc := NewKnowledgeService(store)

	match, err := svc.Retrieve(context.Background(), "asdkj qwru")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 1, store.calls)
}

func TestRetrieveEmptyKnowledgeBase(t *testing.T) {
	svc := NewKnowledgeService(&mockKnowledgeStore{})

	match, err := svc.Retrieve(context.Background(), "lúa bị đạo ôn")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestRetrieveTieKeepsEarliestEntry(t *testing.T) {
	first := models.KnowledgeEntry{
		DiseaseName: "Bệnh đốm nâu",
		Symptoms:    []string{"chop la kho xam"},
	}
	second := models.KnowledgeEntry{
		DiseaseName: "Bệnh gỉ sắt",
		Symptoms:    []string{"chay kho dau la"},
	}
	store := &mockKnowledgeStore{entries: []models.KnowledgeEntry{first, second}}
	svc := NewKnowledgeService(store)

	// both entries share exactly one token with the message
	match, err := svc.Retrieve(context.Background(), "la bi kho heo")
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, 1, match.Score)
	assert.Equal(t, "Bệnh đốm nâu", match.Entry.DiseaseName)
}

func TestRetrieveStoreError(t *testing.T) {
	store := &mockKnowledgeStore{err: assert.AnError}
	svc := NewKnowledgeService(store)

	match, err := svc.Retrieve(context.Background(), "lúa bị đạo ôn")
	assert.Error(t, err)
	assert.Nil(t, match)
}
