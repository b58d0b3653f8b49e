package timelock

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/tetu-timelock/types"
)

func newInfo(t *testing.T, p types.Payload, readyAt uint64) types.TimeLockInfo {
	t.Helper()

	info, err := types.NewTimeLockInfo(p, readyAt-100, readyAt)
	require.NoError(t, err)

	return info
}

func Test_Registry_Lifecycle(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	dao := newInfo(t, types.AddressChange{Op: types.OpDao, Controller: controllerAddr, NewAddress: vaultA}, 1000)
	stop := newInfo(t, types.VaultStop{Vault: vaultA}, 2000)

	err := r.Update(func(tx *Tx) error {
		idx, err := tx.Register(dao)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), idx)

		idx, err = tx.Register(stop)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), idx)

		return nil
	})
	require.NoError(t, err)

	err = r.View(func(tx *Tx) error {
		assert.Equal(t, uint64(3), tx.Len())
		assert.Equal(t, uint64(1), tx.Index(types.NewKey(types.OpDao, common.Address{})))
		assert.Equal(t, uint64(2), tx.Index(types.NewKey(types.OpVaultStop, vaultA)))
		assert.Equal(t, uint64(0), tx.Index(types.NewKey(types.OpVaultStop, vaultB)))
		assert.Equal(t, uint64(1000), tx.ScheduleOf(dao.OpHash))
		assert.Equal(t, uint64(0), tx.ScheduleOf(common.HexToHash("0x01")))

		got, err := tx.Get(2)
		require.NoError(t, err)
		assert.Equal(t, stop.OpHash, got.OpHash)

		return nil
	})
	require.NoError(t, err)

	err = r.Update(func(tx *Tx) error {
		return tx.Clear(dao.Key())
	})
	require.NoError(t, err)

	err = r.View(func(tx *Tx) error {
		assert.Equal(t, uint64(0), tx.Index(dao.Key()))
		assert.Equal(t, uint64(0), tx.ScheduleOf(dao.OpHash))

		// history is kept
		got, err := tx.Get(1)
		require.NoError(t, err)
		assert.Equal(t, dao.OpHash, got.OpHash)

		return nil
	})
	require.NoError(t, err)
}

func Test_Registry_Get(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Update(func(tx *Tx) error {
		_, err := tx.Register(newInfo(t, types.VaultStop{Vault: vaultA}, 1000))
		return err
	}))

	tests := []struct {
		name      string
		giveIndex uint64
		wantErr   bool
	}{
		{name: "placeholder", giveIndex: 0, wantErr: true},
		{name: "first record", giveIndex: 1},
		{name: "beyond length", giveIndex: 2, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := r.View(func(tx *Tx) error {
				_, err := tx.Get(tt.giveIndex)
				return err
			})

			if tt.wantErr {
				var target *NotFoundError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, tt.giveIndex, target.Index)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_Registry_DuplicatePending(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := newInfo(t, types.RatioChange{
		Op: types.OpPsRatio, Controller: controllerAddr, Numerator: big.NewInt(1), Denominator: big.NewInt(2),
	}, 1000)
	second := newInfo(t, types.RatioChange{
		Op: types.OpPsRatio, Controller: controllerAddr, Numerator: big.NewInt(1), Denominator: big.NewInt(3),
	}, 1000)

	err := r.Update(func(tx *Tx) error {
		if _, err := tx.Register(first); err != nil {
			return err
		}
		_, err := tx.Register(second)

		return err
	})

	var target *DuplicatePendingError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, uint64(1), target.Index)

	// the whole transaction was rolled back
	require.NoError(t, r.View(func(tx *Tx) error {
		assert.Equal(t, uint64(1), tx.Len())
		assert.Equal(t, uint64(0), tx.Index(first.Key()))
		assert.Equal(t, uint64(0), tx.ScheduleOf(first.OpHash))

		return nil
	}))
}

func Test_Registry_Rollback(t *testing.T) {
	t.Parallel()

	r := NewRegistry(WithDuration(time.Hour))
	live := newInfo(t, types.VaultStop{Vault: vaultA}, 1000)
	require.NoError(t, r.Update(func(tx *Tx) error {
		_, err := tx.Register(live)
		return err
	}))

	errBoom := errors.New("boom")
	err := r.Update(func(tx *Tx) error {
		require.NoError(t, tx.Clear(live.Key()))
		require.NoError(t, tx.SetDuration(2*time.Hour))
		_, err := tx.Register(newInfo(t, types.VaultStop{Vault: vaultB}, 3000))
		require.NoError(t, err)

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	require.NoError(t, r.View(func(tx *Tx) error {
		assert.Equal(t, uint64(1), tx.Index(live.Key()))
		assert.Equal(t, uint64(1000), tx.ScheduleOf(live.OpHash))
		assert.Equal(t, uint64(0), tx.Index(types.NewKey(types.OpVaultStop, vaultB)))
		assert.Equal(t, uint64(2), tx.Len())
		assert.Equal(t, time.Hour, tx.Duration())

		return nil
	}))
}

func Test_Registry_ViewIsReadOnly(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := r.View(func(tx *Tx) error {
		_, err := tx.Register(newInfo(t, types.VaultStop{Vault: vaultA}, 1000))
		return err
	})
	require.ErrorIs(t, err, errReadOnlyTx)

	err = r.View(func(tx *Tx) error {
		return tx.SetDuration(time.Minute)
	})
	require.ErrorIs(t, err, errReadOnlyTx)
}

func Test_Registry_ClearNotLive(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := r.Update(func(tx *Tx) error {
		return tx.Clear(types.NewKey(types.OpMint, common.Address{}))
	})

	var target *NoSuchAnnouncementError
	require.ErrorAs(t, err, &target)
}

func Test_Registry_SnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRegistry(WithDuration(36 * time.Hour))
	mint := newInfo(t, types.Mint{
		MintHelper: mintHelperAddr, Amount: big.NewInt(10_000), Distributor: distributorAddr, Fund: fundAddr,
	}, 5000)
	stopA := newInfo(t, types.VaultStop{Vault: vaultA}, 6000)
	stopB := newInfo(t, types.VaultStop{Vault: vaultB}, 7000)

	require.NoError(t, r.Update(func(tx *Tx) error {
		for _, info := range []types.TimeLockInfo{mint, stopA, stopB} {
			if _, err := tx.Register(info); err != nil {
				return err
			}
		}

		return tx.Clear(stopA.Key())
	}))

	data, err := r.Snapshot()
	require.NoError(t, err)

	restored, err := RestoreRegistry(data)
	require.NoError(t, err)

	bigCmp := cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })
	require.NoError(t, restored.View(func(tx *Tx) error {
		assert.Equal(t, 36*time.Hour, tx.Duration())
		assert.Equal(t, uint64(4), tx.Len())
		assert.Equal(t, uint64(1), tx.Index(mint.Key()))
		assert.Equal(t, uint64(0), tx.Index(stopA.Key()))
		assert.Equal(t, uint64(3), tx.Index(stopB.Key()))
		assert.Equal(t, uint64(5000), tx.ScheduleOf(mint.OpHash))
		assert.Equal(t, uint64(0), tx.ScheduleOf(stopA.OpHash))

		got, err := tx.Get(1)
		require.NoError(t, err)
		if diff := cmp.Diff(mint, got, bigCmp); diff != "" {
			t.Errorf("restored record mismatch (-want +got):\n%s", diff)
		}

		return nil
	}))
}

func Test_RestoreRegistry_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{name: "malformed", give: `{`, wantErr: "failed to unmarshal registry snapshot"},
		{name: "live index out of range", give: `{"duration":"1h","infos":[],"live":[1]}`, wantErr: "live index 1 out of range"},
		{name: "placeholder live", give: `{"duration":"1h","infos":[],"live":[0]}`, wantErr: "live index 0 out of range"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := RestoreRegistry([]byte(tt.give))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
