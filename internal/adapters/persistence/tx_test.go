package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franztrierweiler/colonie-ia-sub000/internal/adapters/persistence"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/ai"
	"github.com/franztrierweiler/colonie-ia-sub000/internal/domain/player"
	"github.com/franztrierweiler/colonie-ia-sub000/test/helpers"
)

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	tx := persistence.NewGormTxManager(db)
	repo := persistence.NewGormPlayerRepository(db)

	var saved *player.Player

	// Act
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		saved = player.NewComputerPlayer(1, "Hegemony", "red", ai.TierCommander)
		return repo.Save(ctx, saved)
	})

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hegemony", found.Name)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	tx := persistence.NewGormTxManager(db)
	repo := persistence.NewGormPlayerRepository(db)

	var doomed *player.Player
	boom := errors.New("budget rejected")

	// Act - the save succeeds inside the transaction, then the closure fails
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		doomed = player.NewComputerPlayer(1, "Ghost", "gray", ai.TierCommander)
		if err := repo.Save(ctx, doomed); err != nil {
			return err
		}
		return boom
	})

	// Assert
	require.ErrorIs(t, err, boom)
	_, findErr := repo.FindByID(context.Background(), doomed.ID)
	assert.Error(t, findErr)
}

func TestTxManager_RepositoriesJoinTheSameTransaction(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	tx := persistence.NewGormTxManager(db)
	playerRepo := persistence.NewGormPlayerRepository(db)
	techRepo := persistence.NewGormTechnologyRepository(db)

	var p *player.Player

	// Act - a failure after the second write must undo both
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		p = player.NewComputerPlayer(1, "Hegemony", "red", ai.TierCommander)
		if err := playerRepo.Save(ctx, p); err != nil {
			return err
		}
		if err := techRepo.Save(ctx, player.NewTechnology(p.ID)); err != nil {
			return err
		}
		return errors.New("abort")
	})

	// Assert
	require.Error(t, err)
	_, playerErr := playerRepo.FindByID(context.Background(), p.ID)
	assert.Error(t, playerErr)
	_, techErr := techRepo.FindByPlayer(context.Background(), p.ID)
	assert.Error(t, techErr)
}
