// Package testing provides test infrastructure for marketplace transaction
// testing.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: an in-memory market with a genesis config, a manual clock and
//     amendment control
//   - Account: deterministic named accounts
//   - Assertions: balance, escrow and result checks
//
// Transaction builders live next to the tests that use them, one
// subpackage per transaction family (auction, offer, claim, admin).
//
// # Basic Usage
//
//	func TestBid(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//
//	    alice := testing.NewAccount("alice")
//	    bob := testing.NewAccount("bob")
//	    env.Fund(alice, testing.NFT("ART-abcdef", 1))
//	    env.Fund(bob, testing.Native(1000))
//
//	    result := env.Submit(auction.Create(alice, testing.NFT("ART-abcdef", 1), env.Now()+3600).
//	        MinPrice(100).Build())
//	    testing.RequireTxSuccess(t, result)
//	}
//
// # Clock Control
//
// Transactions are stamped with the environment's ManualClock:
//
//	env.AdvanceTime(10 * time.Second)
//	env.Now() // current timestamp in seconds
package testing
