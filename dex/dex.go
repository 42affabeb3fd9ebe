// Package dex is the facade a hosting shell talks to: account and token
// registration, canonical pool lookup by token pair, and the batched
// action entry point, all delegating the actual bonding-curve math to
// clamm.Pool.
package dex

import (
	"sort"

	"cosmossdk.io/log"

	"github.com/dx25labs/clamm-core/clamm"
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// PairKey canonically orders a token pair so (X,Y) and (Y,X) resolve to the
// same pool.
type PairKey struct {
	Left, Right string
}

func newPairKey(a, b string) (PairKey, bool) {
	if a == b {
		return PairKey{}, false
	}
	if a > b {
		a, b = b, a
	}
	return PairKey{a, b}, true
}

// sideOf reports which side of the pool's canonical ordering token
// occupies.
func (k PairKey) sideOf(token string) types.Side {
	if token == k.Left {
		return types.Left
	}
	return types.Right
}

// Account holds one address's spendable balances, its open positions, and
// its in-flight withdraw tracker.
type Account struct {
	Balances        map[string]types.Amount
	Positions       map[types.PositionID]PairKey
	WithdrawTracker map[string]types.Amount
}

func newAccount() *Account {
	return &Account{
		Balances:        make(map[string]types.Amount),
		Positions:       make(map[types.PositionID]PairKey),
		WithdrawTracker: make(map[string]types.Amount),
	}
}

// Balance returns the spendable balance for token, zero if never credited.
func (a *Account) Balance(token string) types.Amount {
	if bal, ok := a.Balances[token]; ok {
		return bal
	}
	return types.ZeroAmount()
}

// Credit adds amount to token's balance.
func (a *Account) Credit(token string, amount types.Amount) {
	a.Balances[token] = a.Balance(token).Add(amount)
}

// Debit subtracts amount from token's balance, failing if it would go
// negative.
func (a *Account) Debit(token string, amount types.Amount) error {
	bal := a.Balance(token)
	if bal.Cmp(amount) < 0 {
		return types.ErrNotEnoughTokens
	}
	a.Balances[token] = bal.Sub(amount)
	return nil
}

// Dex is the top-level facade: every pool for every registered token pair,
// every account, the verified-token allowlist, and the governance guard
// list that SuspendPayableAPI/ResumePayableAPI check.
type Dex struct {
	Params types.Params
	Logger log.Logger

	Pools          map[PairKey]*clamm.Pool
	Accounts       map[string]*Account
	VerifiedTokens map[string]bool

	Owner             string
	GuardAccounts     map[string]bool
	PayableSuspended  bool

	nextPositionID types.PositionID
}

func New(owner string, params types.Params, logger log.Logger) *Dex {
	return &Dex{
		Params:         params,
		Logger:         logger.With("module", "dex"),
		Pools:          make(map[PairKey]*clamm.Pool),
		Accounts:       make(map[string]*Account),
		VerifiedTokens: make(map[string]bool),
		Owner:          owner,
		GuardAccounts:  make(map[string]bool),
	}
}

func (d *Dex) account(id string) (*Account, error) {
	a, ok := d.Accounts[id]
	if !ok {
		return nil, types.ErrAccountNotRegistered
	}
	return a, nil
}

// RegisterAccount creates an account's balance/position/withdraw-tracker
// record; calling it twice for the same id is a no-op, matching the
// batch executor's "at most once, first action" contract at the caller
// level rather than here.
func (d *Dex) RegisterAccount(id string) {
	if _, ok := d.Accounts[id]; !ok {
		d.Accounts[id] = newAccount()
	}
}

// RegisterTokens adds tokens to the verified allowlist, rejecting
// duplicates within the same call.
func (d *Dex) RegisterTokens(tokens []string) error {
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			return types.ErrTokenDuplicates
		}
		seen[t] = true
	}
	for _, t := range tokens {
		d.VerifiedTokens[t] = true
	}
	return nil
}

func (d *Dex) requireVerified(token string) error {
	if !d.VerifiedTokens[token] {
		return types.ErrTokenNotRegistered
	}
	return nil
}

// poolFor returns the pool for a token pair, creating it on first use.
func (d *Dex) poolFor(tokenA, tokenB string) (*clamm.Pool, PairKey, error) {
	key, ok := newPairKey(tokenA, tokenB)
	if !ok {
		return nil, PairKey{}, types.ErrTokenDuplicates
	}
	if err := d.requireVerified(tokenA); err != nil {
		return nil, PairKey{}, err
	}
	if err := d.requireVerified(tokenB); err != nil {
		return nil, PairKey{}, err
	}
	pool, ok := d.Pools[key]
	if !ok {
		pool = clamm.NewPool(d.Params, d.Logger)
		d.Pools[key] = pool
	}
	return pool, key, nil
}

func (d *Dex) pool(key PairKey) (*clamm.Pool, error) {
	pool, ok := d.Pools[key]
	if !ok {
		return nil, types.ErrPoolNotRegistered
	}
	return pool, nil
}

// AddGuardAccounts and RemoveGuardAccounts are gated to the owner;
// SuspendPayableAPI and ResumePayableAPI accept the owner or any guard.
func (d *Dex) AddGuardAccounts(caller string, accounts []string) error {
	if caller != d.Owner {
		return types.ErrPermissionDenied
	}
	for _, a := range accounts {
		d.GuardAccounts[a] = true
	}
	return nil
}

func (d *Dex) RemoveGuardAccounts(caller string, accounts []string) error {
	if caller != d.Owner {
		return types.ErrPermissionDenied
	}
	for _, a := range accounts {
		delete(d.GuardAccounts, a)
	}
	return nil
}

func (d *Dex) isGuard(caller string) bool {
	return caller == d.Owner || d.GuardAccounts[caller]
}

func (d *Dex) SuspendPayableAPI(caller string) error {
	if !d.isGuard(caller) {
		return types.ErrGuardChangeStateDenied
	}
	d.PayableSuspended = true
	return nil
}

func (d *Dex) ResumePayableAPI(caller string) error {
	if !d.isGuard(caller) {
		return types.ErrGuardChangeStateDenied
	}
	d.PayableSuspended = false
	return nil
}

func (d *Dex) requirePayable() error {
	if d.PayableSuspended {
		return types.ErrPayableAPISuspended
	}
	return nil
}

func (d *Dex) mintPositionID() types.PositionID {
	d.nextPositionID++
	return d.nextPositionID
}

// PoolInfo renders the read-only query surface for a token pair's pool.
func (d *Dex) PoolInfo(tokenA, tokenB string) (types.PoolInfo, error) {
	key, ok := newPairKey(tokenA, tokenB)
	if !ok {
		return types.PoolInfo{}, types.ErrTokenDuplicates
	}
	pool, err := d.pool(key)
	if err != nil {
		return types.PoolInfo{}, err
	}
	info := types.PoolInfo{
		TotalReserves:     pool.State.TotalReserves,
		PositionReserves:  pool.State.PositionReserves,
		BasisPointDivisor: d.Params.BasisPointDivisor,
	}
	for l := range info.Liquidities {
		level := types.FeeLevel(l)
		info.Liquidities[l] = pool.State.NetLiquidities[l]
		info.EffSqrtprices[l] = pool.State.EffSqrtpricesByLevel[l]
		info.SpotSqrtprices[l] = pool.State.SpotSqrtprice
		rateBP := xmath.FeeRate(level).Mul(xmath.FromFloat64(float64(d.Params.BasisPointDivisor)))
		info.FeeRatesBP[l] = int32(rateBP.Float64())
	}
	return info, nil
}

// sortedTokens returns the verified-token allowlist in sorted order; no
// code in this package calls it.
func (d *Dex) sortedTokens() []string {
	out := make([]string, 0, len(d.VerifiedTokens))
	for t := range d.VerifiedTokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
