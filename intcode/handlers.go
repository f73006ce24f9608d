package intcode

// fetch decodes the instruction at ip, growing the tape over its
// parameter cells if needed.
func (m *Machine) fetch() (Instruction, error) {
	raw, err := m.mem.read(m.ip)
	if err != nil {
		return Instruction{}, &Fault{IP: m.ip, Addr: m.ip, Err: err}
	}
	op, modes := splitInstruction(raw)
	inst := Instruction{Addr: m.ip, Raw: raw, Op: op, Modes: modes}
	if param, kind := checkInstruction(op, modes); kind != nil {
		return inst, &Fault{IP: m.ip, Raw: raw, Op: op, Param: param, Err: kind}
	}
	n := op.Params()
	if n > 0 {
		inst.Params = make([]int64, n)
		for i := range inst.Params {
			addr := m.ip + 1 + int64(i)
			if inst.Params[i], err = m.mem.read(addr); err != nil {
				return inst, &Fault{IP: m.ip, Raw: raw, Op: op, Param: i + 1, Addr: addr, Err: err}
			}
		}
	}
	return inst, nil
}

// load resolves the value of parameter i (0-based).
func (m *Machine) load(inst Instruction, i int) (int64, error) {
	var addr int64
	switch inst.Modes[i] {
	case ModeImmediate:
		return inst.Params[i], nil
	case ModePosition:
		addr = inst.Params[i]
	case ModeRelative:
		addr = m.base + inst.Params[i]
	}
	v, err := m.mem.read(addr)
	if err != nil {
		return 0, m.addrFault(inst, i, addr, err)
	}
	return v, nil
}

// target resolves the write address of parameter i (0-based) and makes
// sure the cell exists.
func (m *Machine) target(inst Instruction, i int) (int64, error) {
	var addr int64
	switch inst.Modes[i] {
	case ModePosition:
		addr = inst.Params[i]
	case ModeRelative:
		addr = m.base + inst.Params[i]
	default:
		return 0, &Fault{IP: inst.Addr, Raw: inst.Raw, Op: inst.Op, Param: i + 1, Err: ErrImmediateWrite}
	}
	if err := m.mem.ensure(addr); err != nil {
		return 0, m.addrFault(inst, i, addr, err)
	}
	return addr, nil
}

func (m *Machine) store(inst Instruction, i int, value int64) error {
	addr, err := m.target(inst, i)
	if err != nil {
		return err
	}
	m.mem.cells[addr] = value
	return nil
}

func (m *Machine) addrFault(inst Instruction, i int, addr int64, err error) *Fault {
	return &Fault{IP: inst.Addr, Raw: inst.Raw, Op: inst.Op, Param: i + 1, Addr: addr, Err: err}
}

// operands loads the first two parameters.
func (m *Machine) operands(inst Instruction) (int64, int64, error) {
	a, err := m.load(inst, 0)
	if err != nil {
		return 0, 0, err
	}
	b, err := m.load(inst, 1)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (m *Machine) execAdd(inst Instruction) error {
	a, b, err := m.operands(inst)
	if err != nil {
		return err
	}
	if err := m.store(inst, 2, a+b); err != nil {
		return err
	}
	m.ip += 4
	return nil
}

func (m *Machine) execMul(inst Instruction) error {
	a, b, err := m.operands(inst)
	if err != nil {
		return err
	}
	if err := m.store(inst, 2, a*b); err != nil {
		return err
	}
	m.ip += 4
	return nil
}

// execInput leaves ip untouched when the source fails, so the instruction
// runs again on the next Execute.
func (m *Machine) execInput(inst Instruction, in Source) error {
	addr, err := m.target(inst, 0)
	if err != nil {
		return err
	}
	v, err := in.Next()
	if err != nil {
		log.Debugf("%s: input at ip=%d failed: %v", m.label(), m.ip, err)
		return &InputError{Machine: m.name, IP: m.ip, Err: err}
	}
	m.mem.cells[addr] = v
	m.ip += 2
	return nil
}

func (m *Machine) execOutput(inst Instruction) (int64, error) {
	v, err := m.load(inst, 0)
	if err != nil {
		return 0, err
	}
	m.ip += 2
	return v, nil
}

func (m *Machine) execJump(inst Instruction, ifNonZero bool) error {
	cond, target, err := m.operands(inst)
	if err != nil {
		return err
	}
	if (cond != 0) == ifNonZero {
		m.ip = target
		return nil
	}
	m.ip += 3
	return nil
}

func (m *Machine) execLessThan(inst Instruction) error {
	a, b, err := m.operands(inst)
	if err != nil {
		return err
	}
	var v int64
	if a < b {
		v = 1
	}
	if err := m.store(inst, 2, v); err != nil {
		return err
	}
	m.ip += 4
	return nil
}

func (m *Machine) execEquals(inst Instruction) error {
	a, b, err := m.operands(inst)
	if err != nil {
		return err
	}
	var v int64
	if a == b {
		v = 1
	}
	if err := m.store(inst, 2, v); err != nil {
		return err
	}
	m.ip += 4
	return nil
}

func (m *Machine) execAdjustBase(inst Instruction) error {
	a, err := m.load(inst, 0)
	if err != nil {
		return err
	}
	m.base += a
	m.ip += 2
	return nil
}
