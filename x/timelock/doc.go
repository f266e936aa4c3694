/*
Package timelock implements a multisig timelock contract.

A fixed set of signers creates proposals, each being an encoded call against
a target contract. A proposal can be executed once enough signers approved it
and the configured delay since its creation has passed. Execution delivers
the call on behalf of the timelock contract, so targets can recognise the
timelock as their caller.

Proposals are never deleted. A proposal is executed at most once, its state
is marked as executed before the call is delivered so that the call cannot
execute it again.
*/
package timelock
