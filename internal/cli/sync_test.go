package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const syncSeed = `resources:
  - type: type
    key: cat-type
  - type: product-type
    key: shirt
`

const syncDrafts = `categories:
  - key: shirts
    name: { en: Shirts }
    slug: { en: shirts }
    parent: { key: men }
    custom:
      type: { key: cat-type }
  - key: men
    name: { en: Men }
    slug: { en: men }
products:
  - key: oxford
    name: { en: Oxford }
    slug: { en: oxford }
    productType: { key: shirt }
    categories:
      - { key: shirts }
  - key: loafer
    name: { en: Loafer }
    slug: { en: loafer }
    productType: { key: shoe }
`

func TestSyncCommand_Text(t *testing.T) {
	dir, db := seededCatalog(t, syncSeed)
	drafts := writeFile(t, dir, "drafts.yaml", syncDrafts)

	stdout, _, err := execute(t, "sync", "--db", db, drafts)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "Summary: 2 categories were processed in total (2 created, 0 updated and 0 failed to sync).")
	assert.Contains(t, stdout, "Summary: 2 products were processed in total (1 created, 0 updated and 1 failed to sync).")
	assert.Contains(t, stdout, "Product type with key 'shoe' doesn't exist.")
	assert.Contains(t, stdout, "Error [E_SYNC_FAILED]: 1 draft(s) failed to sync")
}

func TestSyncCommand_SecondRunIsUnchanged(t *testing.T) {
	dir, db := seededCatalog(t, syncSeed)
	drafts := writeFile(t, dir, "drafts.yaml", `categories:
  - {key: men, name: {en: Men}, slug: {en: men}}
`)

	_, _, err := execute(t, "sync", "--db", db, drafts)
	require.NoError(t, err)

	stdout, _, err := execute(t, "sync", "--db", db, drafts)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Summary: 1 categories were processed in total (0 created, 0 updated and 0 failed to sync).")

	changed := writeFile(t, dir, "changed.yaml", `categories:
  - {key: men, name: {en: Gentlemen}, slug: {en: men}}
`)
	stdout, _, err = execute(t, "sync", "--db", db, changed)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(0 created, 1 updated and 0 failed to sync)")
}

func TestSyncCommand_JSON(t *testing.T) {
	dir, db := seededCatalog(t, syncSeed)
	drafts := writeFile(t, dir, "drafts.yaml", syncDrafts)

	stdout, _, err := execute(t, "--format", "json", "sync", "--db", db, "--parallel", "2", "--batch-size", "1", drafts)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   SyncResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Len(t, resp.Data.RunID, 36)
	require.Len(t, resp.Data.Statistics, 2)
	for _, s := range resp.Data.Statistics {
		assert.Equal(t, resp.Data.RunID, s.RunID)
	}
	assert.Equal(t, int64(1), resp.Data.Statistics[1].Failed)
	require.Len(t, resp.Data.Failures, 1)
	assert.Equal(t, "RESOLUTION_FAILED", resp.Data.Failures[0].Code)
	assert.Positive(t, resp.Data.Cache.Hits+resp.Data.Cache.Misses)
	assert.Equal(t, CodeSyncFailed, resp.Error.Code)
}

func TestSyncCommand_EnsureChannelsFromConfig(t *testing.T) {
	dir, db := seededCatalog(t, "resources: []\n")
	drafts := writeFile(t, dir, "drafts.yaml", `inventoryEntries:
  - {sku: sku-1, quantityOnStock: 3, supplyChannel: {key: berlin}}
`)

	_, _, err := execute(t, "sync", "--db", db, drafts)
	require.Error(t, err, "channel does not exist yet")

	cfg := writeFile(t, dir, "sync.cue", "ensureChannels: true\nbatchSize: 10\n")
	stdout, _, err := execute(t, "sync", "--db", db, "--config", cfg, drafts)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Summary: 1 inventory entries were processed in total (1 created, 0 updated and 0 failed to sync).")

	// The flag overrides the config.
	other := writeFile(t, dir, "other.yaml", `inventoryEntries:
  - {sku: sku-2, quantityOnStock: 1, supplyChannel: {key: hamburg}}
`)
	_, _, err = execute(t, "sync", "--db", db, "--config", cfg, "--ensure-channels=false", other)
	require.Error(t, err)
}

func TestSyncCommand_Verbose(t *testing.T) {
	dir, db := seededCatalog(t, syncSeed)
	drafts := writeFile(t, dir, "drafts.yaml", "categories:\n  - {key: men, name: {en: Men}, slug: {en: men}}\n")

	stdout, stderr, err := execute(t, "-v", "sync", "--db", db, drafts)
	require.NoError(t, err)
	assert.Contains(t, stdout, "key cache")
	assert.Contains(t, stderr, "sync starting")
	assert.Contains(t, stderr, "run_id=")
}

func TestSyncCommand_DuplicateWarning(t *testing.T) {
	dir, db := seededCatalog(t, "resources: []\n")
	drafts := writeFile(t, dir, "drafts.yaml", `categories:
  - {key: a, name: {en: A}, slug: {en: a}}
  - {key: a, name: {en: A2}, slug: {en: a}}
`)

	stdout, _, err := execute(t, "sync", "--db", filepath.Clean(db), drafts)
	require.NoError(t, err)
	assert.Contains(t, stdout, "! Skipping CategoryDraft with key:'a'")
}
