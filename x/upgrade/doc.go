/*
Package upgrade implements governed contracts: contracts whose logic can be
replaced only by a designated upgrade authority.

Upgrade authority is handed over in two phases. The contract owner asks the
contract to encode a grant call for a requester. The encoded call is then
delivered to the contract by its timelock, which is the only caller allowed
to grant the authority.
*/
package upgrade
