package leveldb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LastBlock returns the block with the highest number.
func (r *Repository) LastBlock(_ context.Context) (block model.Block, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("last_block", err, start)
	}()

	iter := r.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	if !iter.Last() {
		return model.Block{}, false, iterError(iter)
	}
	block, err = decodeBlock(iter.Value())
	if err != nil {
		return model.Block{}, false, err
	}
	return block, true, nil
}

// BlockByNumber returns the block stored under number.
func (r *Repository) BlockByNumber(_ context.Context, number uint64) (block model.Block, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_by_number", err, start)
	}()

	block, found, err = r.get(number)
	return block, found, err
}

// BlockByHash returns the lowest-numbered block carrying hash.
func (r *Repository) BlockByHash(_ context.Context, hash string) (block model.Block, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_by_hash", err, start)
	}()

	if hash == "" {
		return model.Block{}, false, nil
	}

	iter := r.db.NewIterator(util.BytesPrefix(hashKeyPrefix(hash)), nil)
	defer iter.Release()

	if !iter.First() {
		return model.Block{}, false, iterError(iter)
	}
	number, err := numberFromHashKey(iter.Key())
	if err != nil {
		return model.Block{}, false, err
	}
	block, found, err = r.get(number)
	return block, found, err
}

// PrecedingBlock returns the existing block with the greatest number below number.
func (r *Repository) PrecedingBlock(_ context.Context, number uint64) (block model.Block, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("preceding_block", err, start)
	}()

	iter := r.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	var ok bool
	if iter.Seek(blockKey(number)) {
		ok = iter.Prev()
	} else {
		ok = iter.Last()
	}
	if !ok {
		return model.Block{}, false, iterError(iter)
	}
	block, err = decodeBlock(iter.Value())
	if err != nil {
		return model.Block{}, false, err
	}
	if block.Number >= number {
		return model.Block{}, false, nil
	}
	return block, true, nil
}

// BlocksInRange returns at most limit blocks numbered within [from, to], ascending.
func (r *Repository) BlocksInRange(_ context.Context, from, to, limit uint64) (blocks []model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("blocks_in_range", err, start)
	}()

	if limit == 0 || to < from {
		return nil, nil
	}

	rng := util.BytesPrefix(blockPrefix)
	rng.Start = blockKey(from)
	if to < math.MaxUint64 {
		rng.Limit = blockKey(to + 1)
	}

	iter := r.db.NewIterator(rng, nil)
	defer iter.Release()

	for uint64(len(blocks)) < limit && iter.Next() {
		block, decodeErr := decodeBlock(iter.Value())
		if decodeErr != nil {
			err = decodeErr
			return nil, err
		}
		blocks = append(blocks, block)
	}
	if err = iterError(iter); err != nil {
		return nil, err
	}
	return blocks, nil
}

// InsertBlock stores a new block together with its hash index entry in one batch.
func (r *Repository) InsertBlock(_ context.Context, block model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_block", err, start)
	}()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	exists, err := r.db.Has(blockKey(block.Number), nil)
	if err != nil {
		return fmt.Errorf("check block %d: %w", block.Number, err)
	}
	if exists {
		return fmt.Errorf("insert block %d: %w", block.Number, ErrBlockExists)
	}

	data, err := encodeBlock(block)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put(blockKey(block.Number), data)
	batch.Put(hashKey(block.TransactionHash, block.Number), nil)
	if err = r.db.Write(batch, syncWrites); err != nil {
		return fmt.Errorf("write block %d: %w", block.Number, err)
	}
	return nil
}

// UpdateBlock replaces a stored block and moves its hash index entry when the hash changed.
func (r *Repository) UpdateBlock(_ context.Context, block model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_block", err, start)
	}()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, found, err := r.get(block.Number)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("update block %d: %w", block.Number, ErrBlockNotFound)
	}

	data, err := encodeBlock(block)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	if current.TransactionHash != block.TransactionHash {
		batch.Delete(hashKey(current.TransactionHash, block.Number))
	}
	batch.Put(blockKey(block.Number), data)
	batch.Put(hashKey(block.TransactionHash, block.Number), nil)
	if err = r.db.Write(batch, syncWrites); err != nil {
		return fmt.Errorf("write block %d: %w", block.Number, err)
	}
	return nil
}

// DeleteBlock removes a block and its hash index entry. It exists for tamper drills
// and is not part of the ledger contract.
func (r *Repository) DeleteBlock(_ context.Context, number uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_block", err, start)
	}()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	current, found, err := r.get(number)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("delete block %d: %w", number, ErrBlockNotFound)
	}

	batch := new(leveldb.Batch)
	batch.Delete(blockKey(number))
	batch.Delete(hashKey(current.TransactionHash, number))
	if err = r.db.Write(batch, syncWrites); err != nil {
		return fmt.Errorf("delete block %d: %w", number, err)
	}
	return nil
}

func (r *Repository) get(number uint64) (model.Block, bool, error) {
	data, err := r.db.Get(blockKey(number), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return model.Block{}, false, nil
	}
	if err != nil {
		return model.Block{}, false, fmt.Errorf("get block %d: %w", number, err)
	}
	block, err := decodeBlock(data)
	if err != nil {
		return model.Block{}, false, err
	}
	return block, true, nil
}

func iterError(iter iterator.Iterator) error {
	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterate: %w", err)
	}
	return nil
}
