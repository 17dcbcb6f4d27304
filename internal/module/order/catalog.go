package order

// The status catalog: the fixed vocabulary of order statuses, installment
// stages and the allowed-transition table. Pure lookups, no mutable state.

// orderTransitions is the allowed-transition table. A status never appears
// in its own row, so a no-op transition is always rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:   {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:      {OrderStatusCompleted},
	OrderStatusCompleted:    {}, // Terminal state
	OrderStatusCancelled:    {}, // Terminal state
}

// stageSequence is the fixed installment order: 50% up front, 40% before
// delivery, the remainder on handover.
var stageSequence = [3]InstallmentStage{StageInitial, StagePreDelivery, StageFinal}

// stageThresholds maps each stage to the cumulative percentage of the order
// total confirmed once that stage is paid.
var stageThresholds = map[InstallmentStage]int64{
	StageInitial:     50,
	StagePreDelivery: 90,
	StageFinal:       100,
}

// stageStatuses maps each stage to the payment status reached by
// confirming it.
var stageStatuses = map[InstallmentStage]PaymentStatus{
	StageInitial:     PaymentStatusFiftyPaid,
	StagePreDelivery: PaymentStatusNinetyPaid,
	StageFinal:       PaymentStatusFullyPaid,
}

// AllowedTransitions returns all statuses reachable from the given status.
// Unknown statuses yield an empty slice.
func AllowedTransitions(from OrderStatus) []OrderStatus {
	allowed, ok := orderTransitions[from]
	if !ok {
		return []OrderStatus{}
	}
	result := make([]OrderStatus, len(allowed))
	copy(result, allowed)
	return result
}

// CanTransition checks if a transition from `from` to `to` is in the table.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StageOrder returns the fixed installment stage sequence.
func StageOrder() []InstallmentStage {
	result := make([]InstallmentStage, len(stageSequence))
	copy(result, stageSequence[:])
	return result
}

// StageThreshold returns the cumulative percentage reached by confirming
// the given stage, or false for an unknown stage.
func StageThreshold(stage InstallmentStage) (int64, bool) {
	pct, ok := stageThresholds[stage]
	return pct, ok
}

// StatusForStage returns the payment status reached by confirming the given
// stage, or false for an unknown stage.
func StatusForStage(stage InstallmentStage) (PaymentStatus, bool) {
	s, ok := stageStatuses[stage]
	return s, ok
}

// StageIndex returns the position of a stage in the sequence, or -1 for an
// unknown stage.
func StageIndex(stage InstallmentStage) int {
	for i, s := range stageSequence {
		if s == stage {
			return i
		}
	}
	return -1
}

// StageAt returns the stage at the given sequence position, or false when
// the index is out of range.
func StageAt(index int) (InstallmentStage, bool) {
	if index < 0 || index >= len(stageSequence) {
		return "", false
	}
	return stageSequence[index], true
}
