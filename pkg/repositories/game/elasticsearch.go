package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/entities"
)

const (
	roundMapping = `{
		"mappings": {
			"properties": {
				"round_id": { "type": "keyword" },
				"game_id": { "type": "keyword" },
				"round": { "type": "integer" },
				"kind": { "type": "keyword" },
				"multiplier": { "type": "integer" },
				"jack_count": { "type": "integer" },
				"game_over": { "type": "boolean" },
				"completed_at": { "type": "date" },
				"players": {
					"type": "nested",
					"properties": {
						"player_id": { "type": "keyword" },
						"name": { "type": "keyword" },
						"computer": { "type": "boolean" },
						"outcome": { "type": "keyword" },
						"points_charged": { "type": "integer" },
						"total_points": { "type": "integer" },
						"cards_left": { "type": "integer" },
						"game_winner": { "type": "boolean" }
					}
				}
			}
		}
	}`

	playerMapping = `{
		"mappings": {
			"properties": {
				"player_id": { "type": "keyword" },
				"name": { "type": "keyword" },
				"rounds_played": { "type": "integer" },
				"rounds_won": { "type": "integer" },
				"rounds_lost": { "type": "integer" },
				"deadlocks": { "type": "integer" },
				"games_played": { "type": "integer" },
				"games_won": { "type": "integer" },
				"points_charged": { "type": "long" },
				"jack_bonuses": { "type": "integer" },
				"win_rate": { "type": "float" },
				"last_played": { "type": "date" },
				"last_updated": { "type": "date" }
			}
		}
	}`
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "eights",
	}
}

// ElasticsearchRepository indexes every round and statistics change in
// Elasticsearch on top of a base repository, which stays the source of truth
// for reads
type ElasticsearchRepository struct {
	baseRepo    Repository
	client      *elasticsearch.Client
	indexPrefix string
	log         *logging.Logger
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "eights"
	}

	repo := &ElasticsearchRepository{
		baseRepo:    baseRepo,
		client:      client,
		indexPrefix: prefix,
		log:         logging.Default.WithField("component", "elasticsearch"),
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

func (r *ElasticsearchRepository) roundIndex() string  { return r.indexPrefix + "_rounds" }
func (r *ElasticsearchRepository) playerIndex() string { return r.indexPrefix + "_players" }

// initIndices creates the round and player indices if they don't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	for index, mapping := range map[string]string{
		r.roundIndex():  roundMapping,
		r.playerIndex(): playerMapping,
	} {
		res, err := r.client.Indices.Exists([]string{index}, r.client.Indices.Exists.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("error checking if index %s exists: %w", index, err)
		}
		res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			continue
		}

		req := esapi.IndicesCreateRequest{
			Index: index,
			Body:  bytes.NewReader([]byte(mapping)),
		}
		created, err := req.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("error creating index %s: %w", index, err)
		}
		created.Body.Close()

		if created.IsError() {
			return fmt.Errorf("error creating index %s: %s", index, created.String())
		}
		r.log.Info("Created index %s", index)
	}

	return nil
}

// SaveRoundResult saves a round to the base repository and indexes it
func (r *ElasticsearchRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.SaveRoundResult(ctx, result); err != nil {
		return fmt.Errorf("error saving round result to base repository: %w", err)
	}

	return r.IndexRoundResult(ctx, result)
}

// IndexRoundResult indexes a round result document, keyed by round ID
func (r *ElasticsearchRepository) IndexRoundResult(ctx context.Context, result *entities.RoundResult) error {
	return r.index(ctx, r.roundIndex(), result.ID, NewESRoundDocument(result))
}

func (r *ElasticsearchRepository) index(ctx context.Context, index, id string, doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(jsonData),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing %s/%s: %s", index, id, res.String())
	}

	return nil
}

// GetPlayerResults delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetPlayerResults(ctx, playerID, limit)
}

// GetGameResults delegates to the base repository
func (r *ElasticsearchRepository) GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetGameResults(ctx, gameID)
}

// SearchPlayerRounds reads a player's most recent rounds straight from the index
func (r *ElasticsearchRepository) SearchPlayerRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"nested": map[string]interface{}{
				"path": "players",
				"query": map[string]interface{}{
					"term": map[string]interface{}{"players.player_id": playerID},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"completed_at": map[string]string{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.roundIndex()),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for player rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for player rounds: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source ESRoundDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing player rounds: %w", err)
	}

	rounds := make([]*entities.RoundResult, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		rounds = append(rounds, hit.Source.ToRoundResult())
	}
	return rounds, nil
}

// GetPlayerStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	return r.baseRepo.GetPlayerStatistics(ctx, playerID)
}

// GetAllPlayerStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	return r.baseRepo.GetAllPlayerStatistics(ctx)
}

// UpdatePlayerStatistics updates the base repository and re-indexes each
// player's statistics document
func (r *ElasticsearchRepository) UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.UpdatePlayerStatistics(ctx, result); err != nil {
		return fmt.Errorf("error updating statistics in base repository: %w", err)
	}

	for _, pr := range result.Players {
		stats, err := r.baseRepo.GetPlayerStatistics(ctx, pr.PlayerID)
		if err != nil {
			return fmt.Errorf("error reading statistics for %s: %w", pr.PlayerID, err)
		}
		doc := ESPlayerStatistics{
			PlayerStatistics: *stats,
			WinRate:          stats.WinRate(),
			LastUpdated:      time.Now(),
		}
		if err := r.index(ctx, r.playerIndex(), pr.PlayerID, doc); err != nil {
			return err
		}
	}
	return nil
}

// PruneRoundResults prunes the base repository, then deletes the same range
// from the index. The count is the base repository's.
func (r *ElasticsearchRepository) PruneRoundResults(ctx context.Context, before time.Time) (int64, error) {
	removed, err := r.baseRepo.PruneRoundResults(ctx, before)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`{
		"query": {
			"range": { "completed_at": { "lt": "%s" } }
		}
	}`, before.UTC().Format(time.RFC3339))

	res, err := r.client.DeleteByQuery(
		[]string{r.roundIndex()},
		bytes.NewReader([]byte(query)),
		r.client.DeleteByQuery.WithContext(ctx),
		r.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return removed, fmt.Errorf("error deleting indexed rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return removed, fmt.Errorf("error deleting indexed rounds: %s", res.String())
	}

	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&deleted); err == nil {
		r.log.Info("Deleted %d indexed rounds before %s", deleted.Deleted, before.Format(time.RFC3339))
	}

	return removed, nil
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
