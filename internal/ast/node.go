package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (f *File) NodePos() Position    { return f.Pos }
func (f *File) NodeEndPos() Position { return f.EndPos }
func (*File) NodeType() NodeType     { return FILE }

func (q *QualName) NodePos() Position    { return q.Pos }
func (q *QualName) NodeEndPos() Position { return q.EndPos }
func (*QualName) NodeType() NodeType     { return QUAL_NAME }

func (d *InputDecl) NodePos() Position    { return d.Pos }
func (d *InputDecl) NodeEndPos() Position { return d.EndPos }
func (*InputDecl) NodeType() NodeType     { return INPUT_DECL }

func (k *KindExpr) NodePos() Position    { return k.Pos }
func (k *KindExpr) NodeEndPos() Position { return k.EndPos }
func (*KindExpr) NodeType() NodeType     { return KIND_EXPR }

func (d *SectionDecl) NodePos() Position    { return d.Pos }
func (d *SectionDecl) NodeEndPos() Position { return d.EndPos }
func (*SectionDecl) NodeType() NodeType     { return SECTION_DECL }

func (d *SlotDecl) NodePos() Position    { return d.Pos }
func (d *SlotDecl) NodeEndPos() Position { return d.EndPos }
func (*SlotDecl) NodeType() NodeType     { return SLOT_DECL }

func (m *MessageBlock) NodePos() Position    { return m.Pos }
func (m *MessageBlock) NodeEndPos() Position { return m.EndPos }
func (*MessageBlock) NodeType() NodeType     { return MESSAGE_BLOCK }

func (r *RenderBlock) NodePos() Position    { return r.Pos }
func (r *RenderBlock) NodeEndPos() Position { return r.EndPos }
func (*RenderBlock) NodeType() NodeType     { return RENDER_BLOCK }

func (a *Attr) NodePos() Position    { return a.Pos }
func (a *Attr) NodeEndPos() Position { return a.EndPos }
func (*Attr) NodeType() NodeType     { return ATTR }

func (s *StringLit) NodePos() Position    { return s.Pos }
func (s *StringLit) NodeEndPos() Position { return s.EndPos }
func (*StringLit) NodeType() NodeType     { return STRING_LIT }

func (n *NumberLit) NodePos() Position    { return n.Pos }
func (n *NumberLit) NodeEndPos() Position { return n.EndPos }
func (*NumberLit) NodeType() NodeType     { return NUMBER_LIT }

func (b *BoolLit) NodePos() Position    { return b.Pos }
func (b *BoolLit) NodeEndPos() Position { return b.EndPos }
func (*BoolLit) NodeType() NodeType     { return BOOL_LIT }

func (m *MapLit) NodePos() Position    { return m.Pos }
func (m *MapLit) NodeEndPos() Position { return m.EndPos }
func (*MapLit) NodeType() NodeType     { return MAP_LIT }

func (e *EmitLit) NodePos() Position    { return e.Pos }
func (e *EmitLit) NodeEndPos() Position { return e.EndPos }
func (*EmitLit) NodeType() NodeType     { return EMIT_LIT }

func (e *EmitSection) NodePos() Position    { return e.Pos }
func (e *EmitSection) NodeEndPos() Position { return e.EndPos }
func (*EmitSection) NodeType() NodeType     { return EMIT_SECTION }

func (e *EmitInput) NodePos() Position    { return e.Pos }
func (e *EmitInput) NodeEndPos() Position { return e.EndPos }
func (*EmitInput) NodeType() NodeType     { return EMIT_INPUT }

func (s *SwitchOp) NodePos() Position    { return s.Pos }
func (s *SwitchOp) NodeEndPos() Position { return s.EndPos }
func (*SwitchOp) NodeType() NodeType     { return SWITCH_OP }

func (c *SwitchCase) NodePos() Position    { return c.Pos }
func (c *SwitchCase) NodeEndPos() Position { return c.EndPos }
func (*SwitchCase) NodeType() NodeType     { return SWITCH_CASE }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }
