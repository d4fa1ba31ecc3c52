package demanda

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/condsaojudas/condominio/internal/util"
)

// PorPagina é o tamanho fixo de página da listagem.
const PorPagina = 10

// ListarParams reúne filtro estrutural e os parâmetros de apresentação
// (busca textual, página) aplicados por cima do resultado do filtro.
type ListarParams struct {
	Filtro Filtro
	Busca  string
	Pagina int
}

// Listagem é uma página do resultado ordenado.
type Listagem struct {
	Demandas     []Demanda `json:"demandas"`
	Pagina       int       `json:"pagina"`
	TotalPaginas int       `json:"total_paginas"`
	Total        int       `json:"total"`
}

// Service reúne regras de negócio das demandas. O filtro por igualdade vive
// no repositório; busca textual, ordenação e paginação são preocupações de
// apresentação e ficam aqui, por cima do mesmo resultado.
type Service struct {
	repo *Repository
}

// NewService cria uma nova instância do serviço.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Criar abre uma nova demanda.
func (s *Service) Criar(ctx context.Context, input CriarInput) (*Demanda, error) {
	return s.repo.Criar(ctx, input)
}

// Buscar devolve uma demanda pelo id.
func (s *Service) Buscar(ctx context.Context, id string) (*Demanda, error) {
	return s.repo.BuscarPorID(ctx, id)
}

// Atualizar aplica atualização parcial sobre a demanda.
func (s *Service) Atualizar(ctx context.Context, id string, input AtualizarInput) (*Demanda, error) {
	return s.repo.Atualizar(ctx, id, input)
}

// Excluir remove a demanda. Devolve se algo foi removido.
func (s *Service) Excluir(ctx context.Context, id string) (bool, error) {
	return s.repo.Excluir(ctx, id)
}

// Todas devolve o lote completo, sem filtro nem paginação. É a entrada do
// dashboard, que recorta períodos por conta própria.
func (s *Service) Todas(ctx context.Context) ([]Demanda, error) {
	return s.repo.ListarTodas(ctx)
}

// Listar filtra, busca, ordena por data de criação decrescente e pagina.
func (s *Service) Listar(ctx context.Context, params ListarParams) (*Listagem, error) {
	demandas, err := s.repo.Filtrar(ctx, params.Filtro)
	if err != nil {
		return nil, err
	}

	if busca := strings.TrimSpace(params.Busca); busca != "" {
		demandas = buscaTextual(demandas, busca)
	}

	sort.SliceStable(demandas, func(i, j int) bool {
		return dataOrdenacao(demandas[i]).After(dataOrdenacao(demandas[j]))
	})

	total := len(demandas)
	totalPaginas := (total + PorPagina - 1) / PorPagina
	if totalPaginas == 0 {
		totalPaginas = 1
	}

	pagina := params.Pagina
	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPaginas {
		pagina = totalPaginas
	}

	inicio := (pagina - 1) * PorPagina
	fim := inicio + PorPagina
	if inicio > total {
		inicio = total
	}
	if fim > total {
		fim = total
	}

	return &Listagem{
		Demandas:     demandas[inicio:fim],
		Pagina:       pagina,
		TotalPaginas: totalPaginas,
		Total:        total,
	}, nil
}

// buscaTextual mantém demandas cujo titulo, descricao, localizacao ou id
// contém o termo, sem diferenciar maiúsculas.
func buscaTextual(demandas []Demanda, termo string) []Demanda {
	termo = strings.ToLower(termo)
	resultado := make([]Demanda, 0, len(demandas))
	for _, d := range demandas {
		if strings.Contains(strings.ToLower(d.Titulo), termo) ||
			strings.Contains(strings.ToLower(d.Descricao), termo) ||
			strings.Contains(strings.ToLower(d.Localizacao), termo) ||
			strings.Contains(strings.ToLower(d.ID), termo) {
			resultado = append(resultado, d)
		}
	}
	return resultado
}

// dataOrdenacao interpreta data_criacao para ordenar; datas malformadas vão
// para o fim da lista em vez de derrubar a listagem.
func dataOrdenacao(d Demanda) time.Time {
	t, err := util.ParseData(d.DataCriacao)
	if err != nil {
		return time.Time{}
	}
	return t
}
