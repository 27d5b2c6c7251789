package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shantum/COH-ERP2-sub001/internal/application/transaction"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/domain/shared"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BalanceService answers balance queries from the ledger through the cache
type BalanceService struct {
	scope   transaction.Scope
	ledger  inventory.InventoryTransactionRepository
	cache   BalanceCache
	metrics *telemetry.ReturnMetrics
}

// NewBalanceService creates a BalanceService. ledger is a non-transactional
// repository used for reads.
func NewBalanceService(scope transaction.Scope, ledger inventory.InventoryTransactionRepository, cache BalanceCache) *BalanceService {
	return &BalanceService{scope: scope, ledger: ledger, cache: cache}
}

// SetMetrics enables cache hit/miss metrics
func (s *BalanceService) SetMetrics(m *telemetry.ReturnMetrics) {
	s.metrics = m
}

// GetBalance returns the balance of one SKU
func (s *BalanceService) GetBalance(ctx context.Context, skuID uuid.UUID) (*BalanceResponse, error) {
	balances, err := s.GetBalances(ctx, []uuid.UUID{skuID})
	if err != nil {
		return nil, err
	}
	return &balances[0], nil
}

// GetBalances returns balances in the order requested. Cache misses are
// resolved together in a single grouped ledger scan. Cache failures degrade to
// the ledger.
func (s *BalanceService) GetBalances(ctx context.Context, skuIDs []uuid.UUID) ([]BalanceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "get_balances",
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, len(skuIDs)))
	defer span.End()

	unique := dedupe(skuIDs)
	hits, err := s.cache.GetMany(ctx, unique)
	if err != nil {
		logger.L(ctx).Warn("Balance cache read failed, reading ledger", zap.Error(err))
		hits = map[uuid.UUID]int{}
	}

	misses := make([]uuid.UUID, 0, len(unique))
	for _, id := range unique {
		if _, ok := hits[id]; !ok {
			misses = append(misses, id)
		}
	}
	s.metrics.RecordBalanceLookup(ctx, len(unique)-len(misses), len(misses))

	resolved := hits
	if len(misses) > 0 {
		fresh, err := s.loadMisses(ctx, misses)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		for id, qty := range fresh {
			resolved[id] = qty
		}
	}

	out := make([]BalanceResponse, len(skuIDs))
	for i, id := range skuIDs {
		out[i] = BalanceResponse{SKUID: id, Balance: resolved[id]}
	}
	return out, nil
}

func (s *BalanceService) loadMisses(ctx context.Context, misses []uuid.UUID) (map[uuid.UUID]int, error) {
	gens, genErr := s.cache.Generations(ctx, misses)

	sums, err := s.ledger.SumBySKUs(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("sum ledger balances: %w", err)
	}
	fresh := make(map[uuid.UUID]int, len(misses))
	for _, id := range misses {
		fresh[id] = sums[id]
	}

	if genErr != nil {
		logger.L(ctx).Warn("Balance cache generations unavailable, skipping populate", zap.Error(genErr))
		return fresh, nil
	}
	if err := s.cache.SetIfUnchanged(ctx, fresh, gens); err != nil {
		logger.L(ctx).Warn("Balance cache populate failed", zap.Error(err))
	}
	return fresh, nil
}

// RecordAdjustment writes a manual correction entry. An outward adjustment
// that would take the balance below zero is refused unless AllowNegative.
func (s *BalanceService) RecordAdjustment(ctx context.Context, req AdjustmentRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "record_adjustment",
		telemetry.WithAttribute(telemetry.SpanAttrSKUID, req.SKUID.String()))
	defer span.End()

	entry, err := inventory.NewInventoryTransaction(req.SKUID, req.Direction, req.Quantity, inventory.ReasonAdjustment)
	if err != nil {
		return nil, err
	}
	entry.WithNotes(req.Notes).WithActor(req.Actor)

	err = s.scope.Execute(ctx, func(repos transaction.Repositories) error {
		if _, err := repos.SKUs().FindByID(ctx, req.SKUID); err != nil {
			return err
		}
		if req.Direction == inventory.DirectionOutward && !req.AllowNegative {
			sums, err := repos.Ledger().SumBySKUs(ctx, []uuid.UUID{req.SKUID})
			if err != nil {
				return fmt.Errorf("sum ledger balance: %w", err)
			}
			if sums[req.SKUID]-req.Quantity < 0 {
				return inventory.ErrInsufficientStock
			}
		}
		return repos.Ledger().Create(ctx, entry)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordLedgerEntry(ctx, entry.Reason.String())
	logger.L(ctx).Info("Inventory adjustment recorded",
		zap.String("sku_id", req.SKUID.String()),
		zap.String("direction", req.Direction.String()),
		zap.Int("quantity", req.Quantity),
	)
	resp := ToTransactionResponse(entry)
	return &resp, nil
}

// ListTransactions returns a SKU's ledger entries, newest first
func (s *BalanceService) ListTransactions(ctx context.Context, skuID uuid.UUID, page shared.Page) ([]TransactionResponse, int64, error) {
	entries, total, err := s.ledger.FindBySKU(ctx, skuID, page.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, len(entries))
	for i := range entries {
		out[i] = ToTransactionResponse(&entries[i])
	}
	return out, total, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
