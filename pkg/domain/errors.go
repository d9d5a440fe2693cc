package domain

import "fmt"

// ContractNotImplementedError indica que o alvo não satisfaz o contrato
// de eventos declarado.
type ContractNotImplementedError struct {
	Contract string
}

func (e *ContractNotImplementedError) Error() string {
	return fmt.Sprintf("target does not implement contract %q", e.Contract)
}

// UnknownEventError indica que o contrato não declara nenhum evento com
// o nome informado.
type UnknownEventError struct {
	Contract string
	Event    string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("contract %q has no event %q", e.Contract, e.Event)
}

// ArgumentMismatchError indica que o evento existe no contrato, mas os
// argumentos não correspondem a nenhuma assinatura.
type ArgumentMismatchError struct {
	Contract string
	Event    string
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("contract %q declares event %q but the arguments do not match", e.Contract, e.Event)
}

// ScriptFaultError indica que um manipulador de script falhou durante a
// invocação. O erro original é preservado via Unwrap.
type ScriptFaultError struct {
	Script string
	Event  string
	Err    error
}

func (e *ScriptFaultError) Error() string {
	return fmt.Sprintf("script %q failed handling event %q: %v", e.Script, e.Event, e.Err)
}

func (e *ScriptFaultError) Unwrap() error {
	return e.Err
}

// MechanicalError indica que a invocação não pôde ser realizada por uma
// limitação do mecanismo de despacho, não por lógica de aplicação. O
// despachante registra e absorve esse erro.
type MechanicalError struct {
	Event  string
	Reason string
}

func (e *MechanicalError) Error() string {
	return fmt.Sprintf("event %q could not be invoked: %s", e.Event, e.Reason)
}
